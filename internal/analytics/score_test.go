package analytics

import "testing"

func TestWaiterScoreExample(t *testing.T) {
	stats := WaiterStats{Orders: 52, Revenue: 89500, Rating: 4.7}
	// normalized: orders 0.52, rating 0.94, revenue 0.895
	// round((0.52*0.5 + 0.94*0.3 + 0.895*0.2) * 100) = round(72.1) = 72
	if got := WaiterScore(stats, PriorityOrders); got != 72 {
		t.Fatalf("expected score 72, got %d", got)
	}
}

func TestWaiterScoreBounds(t *testing.T) {
	cases := []struct {
		name  string
		stats WaiterStats
	}{
		{name: "zero metrics", stats: WaiterStats{}},
		{name: "typical", stats: WaiterStats{Orders: 40, Revenue: 52000, Rating: 4.1}},
		{name: "over cap", stats: WaiterStats{Orders: 100000, Revenue: 1e9, Rating: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, priority := range []WaiterPriority{PriorityOrders, PriorityRevenue, PriorityRating, "unknown"} {
				got := WaiterScore(tc.stats, priority)
				if got < 0 || got > 100 {
					t.Fatalf("priority %s: score %d out of [0,100]", priority, got)
				}
			}
		})
	}
}

func TestWaiterScorePriorityOnlyChangesWeighting(t *testing.T) {
	// At the caps every normalized metric is exactly 1.0, so every priority
	// must produce 100: the priority swaps weights, never the normalization.
	stats := WaiterStats{Orders: maxOrders, Revenue: maxRevenue, Rating: maxRating}
	for _, priority := range []WaiterPriority{PriorityOrders, PriorityRevenue, PriorityRating} {
		if got := WaiterScore(stats, priority); got != 100 {
			t.Fatalf("priority %s: expected 100, got %d", priority, got)
		}
	}
}

func TestRankWaitersOrdering(t *testing.T) {
	stats := []WaiterStats{
		{ID: "a", Name: "Asha", Orders: 20, Revenue: 30000, Rating: 4.0},
		{ID: "b", Name: "Binod", Orders: 60, Revenue: 80000, Rating: 4.8},
		{ID: "c", Name: "Chitra", Orders: 40, Revenue: 50000, Rating: 4.5},
	}

	ranked := RankWaiters(stats, PriorityOrders)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 waiters, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Fatalf("ranking not descending at %d: %d < %d", i, ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].ID != "b" {
		t.Fatalf("expected Binod first, got %s", ranked[0].ID)
	}
	if ranked[0].AvgOrderValue != round2(80000.0/60) {
		t.Fatalf("unexpected avg order value %v", ranked[0].AvgOrderValue)
	}
}

func TestRankWaitersZeroOrders(t *testing.T) {
	ranked := RankWaiters([]WaiterStats{{ID: "a", Name: "Asha", Revenue: 1000}}, PriorityRevenue)
	if ranked[0].AvgOrderValue != 0 {
		t.Fatalf("expected avg order value 0 for zero orders, got %v", ranked[0].AvgOrderValue)
	}
}

func TestCategoryScoreBounds(t *testing.T) {
	aggs := []CategoryAggregate{
		{},
		{TotalValue: 90000, StockHealth: 75, TurnoverRate: 3.5, CriticalAlerts: 2},
		{TotalValue: 1e9, StockHealth: 100, TurnoverRate: 50, CriticalAlerts: 500},
	}

	for _, agg := range aggs {
		for _, priority := range []CategoryPriority{PriorityValue, PriorityQuantity, PriorityCatTurnover, PriorityCatAlerts, "unknown"} {
			got := CategoryScore(agg, priority)
			if got < 0 || got > 100 {
				t.Fatalf("priority %s: score %d out of [0,100]", priority, got)
			}
		}
	}
}

func TestCategoryScoreAlertsInverted(t *testing.T) {
	quiet := CategoryAggregate{TotalValue: 50000, StockHealth: 80, TurnoverRate: 3}
	noisy := quiet
	noisy.CriticalAlerts = 10

	if CategoryScore(quiet, PriorityCatAlerts) <= CategoryScore(noisy, PriorityCatAlerts) {
		t.Fatal("expected fewer alerts to score higher under the alerts priority")
	}
}

func TestRankCategoriesStable(t *testing.T) {
	aggs := []CategoryAggregate{
		{Category: "First", TotalValue: 1000, StockHealth: 50},
		{Category: "Second", TotalValue: 1000, StockHealth: 50},
	}
	ranked := RankCategories(aggs, PriorityValue)
	if ranked[0].Category != "First" || ranked[1].Category != "Second" {
		t.Fatal("equal scores must keep input order")
	}
}
