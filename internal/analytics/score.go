package analytics

import (
	"math"
	"sort"
)

// Normalization caps. Metrics are clamped to these before weighting so a
// runaway value cannot push a score past 100.
const (
	maxOrders   = 100
	maxRating   = 5
	maxRevenue  = 100000
	maxValue    = 150000
	maxHealth   = 100
	maxTurnover = 6
	maxAlerts   = 10
)

type WaiterPriority string

const (
	PriorityOrders  WaiterPriority = "orders"
	PriorityRevenue WaiterPriority = "revenue"
	PriorityRating  WaiterPriority = "rating"
)

type CategoryPriority string

const (
	PriorityValue       CategoryPriority = "value"
	PriorityQuantity    CategoryPriority = "quantity"
	PriorityCatTurnover CategoryPriority = "turnover"
	PriorityCatAlerts   CategoryPriority = "alerts"
)

type WaiterStats struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Rating  float64 `json:"rating"`
}

type WaiterPerformance struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	Satisfaction  float64 `json:"satisfaction"`
	Score         int     `json:"score"`
}

// WaiterScore combines normalized orders/revenue/rating into a 0-100 score.
// The priority selects which fixed weight triple applies; each triple sums
// to 1.0 so the score stays within [0,100] for any non-negative metrics.
func WaiterScore(stats WaiterStats, priority WaiterPriority) int {
	normOrders := clamp01(float64(stats.Orders) / maxOrders)
	normRevenue := clamp01(stats.Revenue / maxRevenue)
	normRating := clamp01(stats.Rating / maxRating)

	var wOrders, wRevenue, wRating float64
	switch priority {
	case PriorityRevenue:
		wRevenue, wOrders, wRating = 0.5, 0.3, 0.2
	case PriorityRating:
		wRating, wOrders, wRevenue = 0.5, 0.3, 0.2
	default: // orders
		wOrders, wRating, wRevenue = 0.5, 0.3, 0.2
	}

	score := normOrders*wOrders + normRevenue*wRevenue + normRating*wRating
	return int(math.Round(score * 100))
}

// RankWaiters derives per-waiter performance records and sorts them by score
// descending. Sorting is stable, so equal scores keep their input order.
func RankWaiters(stats []WaiterStats, priority WaiterPriority) []WaiterPerformance {
	out := make([]WaiterPerformance, 0, len(stats))
	for _, s := range stats {
		perf := WaiterPerformance{
			ID:           s.ID,
			Name:         s.Name,
			Orders:       s.Orders,
			Revenue:      s.Revenue,
			Satisfaction: s.Rating,
			Score:        WaiterScore(s, priority),
		}
		if s.Orders > 0 {
			perf.AvgOrderValue = round2(s.Revenue / float64(s.Orders))
		}
		out = append(out, perf)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

type ScoredCategory struct {
	CategoryAggregate
	Score int `json:"score"`
}

// CategoryScore weights total value, stock health, turnover and the inverted
// alert count ("fewer is better") into a 0-100 score per the selected
// priority. Each weight quadruple sums to 1.0.
func CategoryScore(agg CategoryAggregate, priority CategoryPriority) int {
	normValue := clamp01(agg.TotalValue / maxValue)
	normHealth := clamp01(float64(agg.StockHealth) / maxHealth)
	normTurnover := clamp01(agg.TurnoverRate / maxTurnover)
	normAlerts := 1 - clamp01(float64(agg.CriticalAlerts)/maxAlerts)

	var wValue, wHealth, wTurnover, wAlerts float64
	switch priority {
	case PriorityQuantity:
		wHealth, wValue, wTurnover, wAlerts = 0.4, 0.3, 0.2, 0.1
	case PriorityCatTurnover:
		wTurnover, wValue, wHealth, wAlerts = 0.4, 0.3, 0.2, 0.1
	case PriorityCatAlerts:
		wAlerts, wHealth, wValue, wTurnover = 0.4, 0.3, 0.2, 0.1
	default: // value
		wValue, wHealth, wTurnover, wAlerts = 0.4, 0.3, 0.2, 0.1
	}

	score := normValue*wValue + normHealth*wHealth + normTurnover*wTurnover + normAlerts*wAlerts
	return int(math.Round(score * 100))
}

// RankCategories scores every aggregate and sorts descending (stable).
func RankCategories(aggs []CategoryAggregate, priority CategoryPriority) []ScoredCategory {
	out := make([]ScoredCategory, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, ScoredCategory{CategoryAggregate: agg, Score: CategoryScore(agg, priority)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	return math.Min(1, value)
}
