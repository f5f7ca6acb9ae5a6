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

// OrdersGet serves the reporting payload the dashboards consume: the raw
// order list plus the precomputed revenue/daily aggregates.
func (h *Handler) OrdersGet(w http.ResponseWriter, r *http.Request) {
	var orders OrdersFile
	if err := h.loadOrDefault(FileOrders, &orders); err != nil {
		h.Logger.Error("orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}
	if orders.Orders == nil {
		orders.Orders = []Order{}
	}

	var analyticsData AnalyticsFile
	if err := h.loadOrDefault(FileAnalyticsData, &analyticsData); err != nil {
		h.Logger.Error("analytics data load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load analytics data")
		return
	}

	response.Success(w, map[string]any{
		"orders":    orders.Orders,
		"analytics": analyticsData,
	})
}

func (h *Handler) OrderCreate(w http.ResponseWriter, r *http.Request) {
	var order Order
	if err := h.decodeBody(r, &order); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order payload")
		return
	}
	if len(order.Items) == 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order needs at least one item")
		return
	}

	order.ID = uuid.NewString()
	order.Timestamp = time.Now().Format(time.RFC3339)
	if strings.TrimSpace(order.Status) == "" {
		order.Status = "pending"
	}
	if strings.TrimSpace(order.CustomerName) == "" {
		order.CustomerName = "Walk-in Customer"
	}

	var total float64
	for _, item := range order.Items {
		total += float64(item.Quantity) * item.Price
	}
	order.Total = total

	var orders OrdersFile
	if err := h.loadOrDefault(FileOrders, &orders); err != nil {
		h.Logger.Error("orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to place order")
		return
	}
	orders.Orders = append(orders.Orders, order)

	if err := h.Store.Save(FileOrders, orders); err != nil {
		h.Logger.Error("orders save failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to place order")
		return
	}

	if h.Queue != nil {
		if err := queue.PublishOrderCreated(r.Context(), h.Queue, order.ID, order.Total); err != nil {
			h.Logger.Warn("order event publish failed", zap.String("orderId", order.ID), zapError(err))
		}
	}

	response.Created(w, order)
}
