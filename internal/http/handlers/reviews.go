package handlers

import (
	"net/http"
	"strings"
	"time"

	"spiceroute-services/pkg/response"

	"github.com/google/uuid"
)

func (h *Handler) AllReviewsGet(w http.ResponseWriter, r *http.Request) {
	var reviews ReviewsFile
	if err := h.loadOrDefault(FileReviews, &reviews); err != nil {
		h.Logger.Error("reviews load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}
	if reviews.Reviews == nil {
		reviews.Reviews = []Review{}
	}
	response.Success(w, reviews)
}

func (h *Handler) CustomerReviewCreate(w http.ResponseWriter, r *http.Request) {
	var review Review
	if err := h.decodeBody(r, &review); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review payload")
		return
	}
	if strings.TrimSpace(review.CustomerName) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Customer name is required")
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		return
	}
	review.ID = uuid.NewString()
	review.CreatedAt = time.Now().Format(time.RFC3339)

	var reviews ReviewsFile
	if err := h.loadOrDefault(FileReviews, &reviews); err != nil {
		h.Logger.Error("reviews load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save review")
		return
	}
	reviews.Reviews = append(reviews.Reviews, review)

	if err := h.Store.Save(FileReviews, reviews); err != nil {
		h.Logger.Error("reviews save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save review")
		return
	}
	response.Created(w, review)
}
