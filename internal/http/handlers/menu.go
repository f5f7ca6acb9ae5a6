package handlers

import (
	"net/http"
	"time"

	"spiceroute-services/pkg/response"
)

func (h *Handler) MenuGet(w http.ResponseWriter, r *http.Request) {
	var menu MenuFile
	if err := h.loadOrDefault(FileMenu, &menu); err != nil {
		h.Logger.Error("menu load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load menu")
		return
	}
	if menu.Menu == nil {
		menu.Menu = []MenuCategory{}
	}

	// Apply the availability overlay so sold-out items never reach the
	// browsing UI with a stale price card.
	var avail AvailabilityFile
	if err := h.loadOrDefault(FileMenuAvailability, &avail); err != nil {
		h.Logger.Error("menu availability load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load menu")
		return
	}

	type productView struct {
		MenuProduct
		Available bool `json:"available"`
	}
	type categoryView struct {
		Category string        `json:"category"`
		Products []productView `json:"products"`
	}

	out := make([]categoryView, 0, len(menu.Menu))
	for _, cat := range menu.Menu {
		view := categoryView{Category: cat.Category, Products: make([]productView, 0, len(cat.Products))}
		for _, p := range cat.Products {
			available := true
			if avail.Availability != nil {
				if v, ok := avail.Availability[p.ID]; ok {
					available = v
				}
			}
			view.Products = append(view.Products, productView{MenuProduct: p, Available: available})
		}
		out = append(out, view)
	}

	response.Success(w, map[string]any{"menu": out})
}

func (h *Handler) TodaysSpecialGet(w http.ResponseWriter, r *http.Request) {
	var special TodaysSpecialFile
	if err := h.loadOrDefault(FileTodaysSpecial, &special); err != nil {
		h.Logger.Error("todays special load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load today's special")
		return
	}
	if special.Specials == nil {
		special.Specials = []MenuProduct{}
	}
	response.Success(w, special)
}

func (h *Handler) TodaysSpecialPut(w http.ResponseWriter, r *http.Request) {
	var special TodaysSpecialFile
	if err := h.decodeBody(r, &special); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid special payload")
		return
	}
	special.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := h.Store.Save(FileTodaysSpecial, special); err != nil {
		h.Logger.Error("todays special save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save today's special")
		return
	}
	response.Success(w, special)
}

func (h *Handler) CombosGet(w http.ResponseWriter, r *http.Request) {
	var combos CombosFile
	if err := h.loadOrDefault(FileCombos, &combos); err != nil {
		h.Logger.Error("combos load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load combos")
		return
	}
	if combos.Combos == nil {
		combos.Combos = []Combo{}
	}
	response.Success(w, combos)
}

func (h *Handler) OffersGet(w http.ResponseWriter, r *http.Request) {
	var offers OffersFile
	if err := h.loadOrDefault(FileOffers, &offers); err != nil {
		h.Logger.Error("offers load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load offers")
		return
	}
	if offers.Offers == nil {
		offers.Offers = []Offer{}
	}
	response.Success(w, offers)
}

func (h *Handler) MenuAvailabilityGet(w http.ResponseWriter, r *http.Request) {
	var avail AvailabilityFile
	if err := h.loadOrDefault(FileMenuAvailability, &avail); err != nil {
		h.Logger.Error("availability load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	if avail.Availability == nil {
		avail.Availability = map[string]bool{}
	}
	response.Success(w, avail)
}

func (h *Handler) MenuAvailabilityPut(w http.ResponseWriter, r *http.Request) {
	var avail AvailabilityFile
	if err := h.decodeBody(r, &avail); err != nil || avail.Availability == nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability payload")
		return
	}

	if err := h.Store.Save(FileMenuAvailability, avail); err != nil {
		h.Logger.Error("availability save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save availability")
		return
	}
	response.Success(w, avail)
}
