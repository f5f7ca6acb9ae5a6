package analytics

// ChartPoint is the tuple shape the dashboard charting component consumes.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill"`
}

const (
	chartLabelMax     = 12
	chartFallbackFill = "#9ca3af"
)

var categoryFills = map[string]string{
	"vegetables": "#22c55e",
	"dairy":      "#f59e0b",
	"meat":       "#ef4444",
	"seafood":    "#06b6d4",
	"grains":     "#a16207",
	"spices":     "#f97316",
	"beverages":  "#3b82f6",
	"oils":       "#eab308",
	"dry_goods":  "#8b5cf6",
	"frozen":     "#0ea5e9",
}

func CategoryFill(category string) string {
	if fill, ok := categoryFills[normalizeKey(category)]; ok {
		return fill
	}
	return chartFallbackFill
}

// TruncateLabel shortens long chart labels to max runes plus an ellipsis.
func TruncateLabel(label string, max int) string {
	runes := []rune(label)
	if max <= 0 || len(runes) <= max {
		return label
	}
	return string(runes[:max]) + "..."
}

// CategoryValueChart shapes category aggregates into value-per-category points.
func CategoryValueChart(aggs []CategoryAggregate) []ChartPoint {
	points := make([]ChartPoint, 0, len(aggs))
	for _, agg := range aggs {
		points = append(points, ChartPoint{
			Name:  TruncateLabel(agg.Category, chartLabelMax),
			Value: round2(agg.TotalValue),
			Fill:  CategoryFill(agg.Category),
		})
	}
	return points
}

// CategoryHealthChart shapes category aggregates into stock-health points.
func CategoryHealthChart(aggs []CategoryAggregate) []ChartPoint {
	points := make([]ChartPoint, 0, len(aggs))
	for _, agg := range aggs {
		points = append(points, ChartPoint{
			Name:  TruncateLabel(agg.Category, chartLabelMax),
			Value: float64(agg.StockHealth),
			Fill:  CategoryFill(agg.Category),
		})
	}
	return points
}

// WaiterRevenueChart shapes ranked waiters into revenue points. All waiter
// bars share one fill; the chart colors by position, not identity.
func WaiterRevenueChart(waiters []WaiterPerformance) []ChartPoint {
	points := make([]ChartPoint, 0, len(waiters))
	for _, w := range waiters {
		points = append(points, ChartPoint{
			Name:  TruncateLabel(w.Name, chartLabelMax),
			Value: round2(w.Revenue),
			Fill:  "#6366f1",
		})
	}
	return points
}
