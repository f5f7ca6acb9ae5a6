package handlers

import (
	"net/http"
	"strings"

	"spiceroute-services/internal/analytics"
	"spiceroute-services/pkg/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) InventoryList(w http.ResponseWriter, r *http.Request) {
	var inv InventoryFile
	if err := h.loadOrDefault(FileInventory, &inv); err != nil {
		h.Logger.Error("inventory load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load inventory")
		return
	}
	if inv.Items == nil {
		inv.Items = []analytics.InventoryItem{}
	}
	response.Success(w, inv)
}

func (h *Handler) InventoryCreate(w http.ResponseWriter, r *http.Request) {
	var item analytics.InventoryItem
	if err := h.decodeBody(r, &item); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid inventory payload")
		return
	}
	if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Category) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Item name and category are required")
		return
	}
	item.ID = uuid.NewString()
	if item.Status == "" {
		item.Status = analytics.StatusInStock
	}

	var inv InventoryFile
	if err := h.loadOrDefault(FileInventory, &inv); err != nil {
		h.Logger.Error("inventory load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save inventory item")
		return
	}
	inv.Items = append(inv.Items, item)

	if err := h.Store.Save(FileInventory, inv); err != nil {
		h.Logger.Error("inventory save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save inventory item")
		return
	}
	invalidateDashboardCache("inventory")
	response.Created(w, item)
}

func (h *Handler) InventoryUpdate(w http.ResponseWriter, r *http.Request) {
	itemID := readPathString(r, "id")
	if itemID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Item ID is required")
		return
	}

	var updated analytics.InventoryItem
	if err := h.decodeBody(r, &updated); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid inventory payload")
		return
	}

	var inv InventoryFile
	if err := h.loadOrDefault(FileInventory, &inv); err != nil {
		h.Logger.Error("inventory load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update inventory item")
		return
	}

	found := false
	for i, item := range inv.Items {
		if item.ID == itemID {
			updated.ID = itemID
			inv.Items[i] = updated
			found = true
			break
		}
	}
	if !found {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
		return
	}

	if err := h.Store.Save(FileInventory, inv); err != nil {
		h.Logger.Error("inventory save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update inventory item")
		return
	}
	invalidateDashboardCache("inventory")
	response.Success(w, updated)
}

func (h *Handler) InventoryDelete(w http.ResponseWriter, r *http.Request) {
	itemID := readPathString(r, "id")
	if itemID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Item ID is required")
		return
	}

	var inv InventoryFile
	if err := h.loadOrDefault(FileInventory, &inv); err != nil {
		h.Logger.Error("inventory load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete inventory item")
		return
	}

	kept := make([]analytics.InventoryItem, 0, len(inv.Items))
	var removed *analytics.InventoryItem
	for _, item := range inv.Items {
		if item.ID == itemID {
			itemCopy := item
			removed = &itemCopy
			continue
		}
		kept = append(kept, item)
	}
	if removed == nil {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Inventory item not found")
		return
	}
	inv.Items = kept

	if err := h.Store.Save(FileInventory, inv); err != nil {
		h.Logger.Error("inventory save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete inventory item")
		return
	}

	invalidateDashboardCache("inventory")

	// Best effort: drop the supplier QR image from the object store so the
	// bucket does not accumulate orphans.
	if h.Objects != nil && removed.QRCodeImage != "" {
		if err := h.Objects.DeleteURL(r.Context(), removed.QRCodeImage); err != nil {
			h.Logger.Warn("qr image cleanup failed", zap.String("itemId", itemID), zapError(err))
		}
	}

	response.Success(w, map[string]any{"deleted": itemID})
}
