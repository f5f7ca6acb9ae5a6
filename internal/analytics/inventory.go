package analytics

import (
	"math"
	"sort"
	"strings"
)

type ItemStatus string

const (
	StatusInStock    ItemStatus = "in_stock"
	StatusLowStock   ItemStatus = "low_stock"
	StatusOutOfStock ItemStatus = "out_of_stock"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

type InventoryItem struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CurrentStock  float64    `json:"currentStock"`
	Unit          string     `json:"unit"`
	MinimumStock  float64    `json:"minimumStock"`
	MaximumStock  float64    `json:"maximumStock"`
	UnitPrice     float64    `json:"unitPrice"`
	Supplier      string     `json:"supplier"`
	LastRestocked string     `json:"lastRestocked,omitempty"`
	ExpiryDate    string     `json:"expiryDate,omitempty"`
	Status        ItemStatus `json:"status"`

	IsPaid             bool     `json:"isPaid"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	FinalPrice         float64  `json:"finalPrice,omitempty"`
	PaymentMethods     []string `json:"paymentMethods,omitempty"`
	QRCodeImage        string   `json:"qrCodeImage,omitempty"`
	UPILink            string   `json:"upiLink,omitempty"`
	SupplierPhone      string   `json:"supplierPhone,omitempty"`
}

// CategoryAggregate is a derived summary over one inventory category.
// It is never persisted; callers recompute it from the item list per request.
type CategoryAggregate struct {
	Category       string        `json:"category"`
	TotalItems     int           `json:"totalItems"`
	TotalValue     float64       `json:"totalValue"`
	AverageValue   float64       `json:"averageValue"`
	StockHealth    int           `json:"stockHealth"`
	TurnoverRate   float64       `json:"turnoverRate"`
	LowStockItems  int           `json:"lowStockItems"`
	CriticalAlerts int           `json:"criticalAlerts"`
	TopItem        string        `json:"topItem"`
	Supplier       string        `json:"supplier"`
	UnpaidItems    int           `json:"unpaidItems"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
}

type Filter struct {
	Category string
	Supplier string
}

// turnoverFactor scales the min/current stock ratio into an estimated
// restocks-per-year figure; six roughly matches a bimonthly ordering cycle.
// This is a display heuristic, not a validated business metric.
const turnoverFactor = 6

// AggregateCategories filters items by the optional category/supplier keys and
// groups the remainder into per-category summaries. Filter keys are compared
// after normalization (lowercase, spaces to underscores) so "Dry Goods" and
// "dry_goods" select the same bucket. An empty or "all" filter matches
// everything. Empty input yields an empty slice.
func AggregateCategories(items []InventoryItem, filter Filter) []CategoryAggregate {
	wantCategory := normalizeKey(filter.Category)
	wantSupplier := normalizeKey(filter.Supplier)

	buckets := make(map[string][]InventoryItem)
	order := make([]string, 0)
	for _, item := range items {
		if wantCategory != "" && wantCategory != "all" && normalizeKey(item.Category) != wantCategory {
			continue
		}
		if wantSupplier != "" && wantSupplier != "all" && normalizeKey(item.Supplier) != wantSupplier {
			continue
		}
		if _, seen := buckets[item.Category]; !seen {
			order = append(order, item.Category)
		}
		buckets[item.Category] = append(buckets[item.Category], item)
	}

	out := make([]CategoryAggregate, 0, len(order))
	for _, category := range order {
		out = append(out, summarizeCategory(category, buckets[category]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue > out[j].TotalValue
	})
	return out
}

func summarizeCategory(category string, items []InventoryItem) CategoryAggregate {
	agg := CategoryAggregate{Category: category, TotalItems: len(items)}
	if len(items) == 0 {
		// Grouping never produces an empty bucket; guard anyway so direct
		// callers cannot trip a divide-by-zero.
		agg.PaymentStatus = PaymentPaid
		return agg
	}

	var (
		healthy  int
		sumStock float64
		sumMin   float64
		topValue = math.Inf(-1)
	)
	for _, item := range items {
		value := item.CurrentStock * item.UnitPrice
		agg.TotalValue += value
		sumStock += item.CurrentStock
		sumMin += item.MinimumStock

		switch item.Status {
		case StatusInStock:
			healthy++
		case StatusLowStock:
			agg.LowStockItems++
		case StatusOutOfStock:
			agg.CriticalAlerts++
		}
		if !item.IsPaid {
			agg.UnpaidItems++
		}
		if value > topValue {
			topValue = value
			agg.TopItem = item.Name
			agg.Supplier = item.Supplier
		}
	}

	count := float64(len(items))
	agg.AverageValue = agg.TotalValue / count
	agg.StockHealth = int(math.Round(100 * float64(healthy) / count))

	avgStock := sumStock / count
	avgMin := sumMin / count
	agg.TurnoverRate = math.Max(1, round2(avgMin/math.Max(avgStock, 1)*turnoverFactor))

	switch {
	case agg.UnpaidItems == 0:
		agg.PaymentStatus = PaymentPaid
	case agg.UnpaidItems < agg.TotalItems:
		agg.PaymentStatus = PaymentPartial
	default:
		agg.PaymentStatus = PaymentUnpaid
	}
	return agg
}

func normalizeKey(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
