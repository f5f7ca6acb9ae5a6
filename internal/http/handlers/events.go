package handlers

import (
	"net/http"
	"strings"
	"time"

	"spiceroute-services/internal/queue"
	"spiceroute-services/pkg/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) EventBookingCreate(w http.ResponseWriter, r *http.Request) {
	var booking EventBooking
	if err := h.decodeBody(r, &booking); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking payload")
		return
	}
	if strings.TrimSpace(booking.Name) == "" || strings.TrimSpace(booking.Phone) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Name and phone are required")
		return
	}
	if booking.Guests <= 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Guest count must be positive")
		return
	}
	booking.ID = uuid.NewString()
	booking.Status = "pending"
	booking.CreatedAt = time.Now().Format(time.RFC3339)

	var bookings EventBookingsFile
	if err := h.loadOrDefault(FileEventBookings, &bookings); err != nil {
		h.Logger.Error("event bookings load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save booking")
		return
	}
	bookings.Bookings = append(bookings.Bookings, booking)

	if err := h.Store.Save(FileEventBookings, bookings); err != nil {
		h.Logger.Error("event bookings save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save booking")
		return
	}

	if h.Queue != nil {
		if err := queue.PublishBookingCreated(r.Context(), h.Queue, booking.ID, booking.EventType); err != nil {
			h.Logger.Warn("booking event publish failed", zap.String("bookingId", booking.ID), zapError(err))
		}
	}

	response.Created(w, booking)
}

func (h *Handler) EventBookingsList(w http.ResponseWriter, r *http.Request) {
	var bookings EventBookingsFile
	if err := h.loadOrDefault(FileEventBookings, &bookings); err != nil {
		h.Logger.Error("event bookings load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	if bookings.Bookings == nil {
		bookings.Bookings = []EventBooking{}
	}
	response.Success(w, bookings)
}
