package handlers

import (
	"net/http"
	"time"

	"spiceroute-services/internal/analytics"
	"spiceroute-services/pkg/response"
)

const dashboardCacheTTL = 30 * time.Second

// WaiterAnalytics ranks staff by the weighted performance score. The
// priority query parameter swaps the weight triple, nothing else.
func (h *Handler) WaiterAnalytics(w http.ResponseWriter, r *http.Request) {
	priority := analytics.WaiterPriority(defaultString(r.URL.Query().Get("priority"), string(analytics.PriorityOrders)))

	cacheKey := dashboardCacheKey("waiters", string(priority))
	if cached, ok := getDashboardCache(cacheKey); ok {
		response.JSON(w, http.StatusOK, cached)
		return
	}

	var analyticsData AnalyticsFile
	if err := h.loadOrDefault(FileAnalyticsData, &analyticsData); err != nil {
		h.Logger.Error("analytics data load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load waiter analytics")
		return
	}

	ranked := analytics.RankWaiters(analyticsData.Waiters, priority)

	payload := map[string]any{
		"success": true,
		"data": map[string]any{
			"waiters":      ranked,
			"revenueChart": analytics.WaiterRevenueChart(ranked),
			"priority":     priority,
		},
	}
	setDashboardCache(cacheKey, payload, dashboardCacheTTL)
	response.JSON(w, http.StatusOK, payload)
}

// InventoryAnalytics groups inventory into category aggregates, scores them
// under the selected priority and shapes the chart tuples the dashboard
// renders. Category/supplier filters are normalized before matching.
func (h *Handler) InventoryAnalytics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	priority := analytics.CategoryPriority(defaultString(query.Get("priority"), string(analytics.PriorityValue)))
	filter := analytics.Filter{
		Category: query.Get("category"),
		Supplier: query.Get("supplier"),
	}

	cacheKey := dashboardCacheKey("inventory", string(priority), filter.Category, filter.Supplier)
	if cached, ok := getDashboardCache(cacheKey); ok {
		response.JSON(w, http.StatusOK, cached)
		return
	}

	var inv InventoryFile
	if err := h.loadOrDefault(FileInventory, &inv); err != nil {
		h.Logger.Error("inventory load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load inventory analytics")
		return
	}

	aggregates := analytics.AggregateCategories(inv.Items, filter)
	ranked := analytics.RankCategories(aggregates, priority)

	var totalValue float64
	var criticalAlerts int
	for _, agg := range aggregates {
		totalValue += agg.TotalValue
		criticalAlerts += agg.CriticalAlerts
	}

	payload := map[string]any{
		"success": true,
		"data": map[string]any{
			"categories":     ranked,
			"valueChart":     analytics.CategoryValueChart(aggregates),
			"healthChart":    analytics.CategoryHealthChart(aggregates),
			"totalValue":     totalValue,
			"criticalAlerts": criticalAlerts,
			"priority":       priority,
		},
	}
	setDashboardCache(cacheKey, payload, dashboardCacheTTL)
	response.JSON(w, http.StatusOK, payload)
}
