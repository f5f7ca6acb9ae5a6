package migration

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreCustomer(t *testing.T) {
	weights := CurrentMatchWeights()
	customer := CustomerProfile{
		ID:          "cust-1",
		DisplayName: "Priya Sharma",
		Phone:       "+91 98765 43210",
		Addresses:   []string{"42 MG Road, Bengaluru", "7 Lake View, Mysuru"},
	}

	tests := []struct {
		name  string
		order LegacyOrder
		want  float64
	}{
		{
			name:  "no overlap",
			order: LegacyOrder{CustomerName: "Someone Else", Phone: "000"},
			want:  0,
		},
		{
			name:  "name only",
			order: LegacyOrder{CustomerName: "Priya Sharma"},
			want:  0.6,
		},
		{
			name:  "name case insensitive",
			order: LegacyOrder{CustomerName: "priya sharma"},
			want:  0.6,
		},
		{
			name:  "phone only",
			order: LegacyOrder{CustomerName: "P. Sharma", Phone: "919876543210"},
			want:  0.8,
		},
		{
			name:  "name and phone boosted",
			order: LegacyOrder{CustomerName: "Priya Sharma", Phone: "+91 98765 43210"},
			want:  0.9,
		},
		{
			name: "address containment adds per hit",
			order: LegacyOrder{
				CustomerName:    "Priya Sharma",
				DeliveryAddress: "42 MG Road",
			},
			want: 0.65,
		},
		{
			name: "name phone and address stack",
			order: LegacyOrder{
				CustomerName:    "Priya Sharma",
				Phone:           "9876543210",
				DeliveryAddress: "42 MG Road",
			},
			want: 0.95,
		},
		{
			name: "address alone earns nothing",
			order: LegacyOrder{
				CustomerName:    "Stranger",
				DeliveryAddress: "42 MG Road",
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreCustomer(tt.order, customer, weights)
			if !almostEqual(got, tt.want) {
				t.Fatalf("scoreCustomer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreCustomerPhoneNormalization(t *testing.T) {
	weights := CurrentMatchWeights()
	customer := CustomerProfile{ID: "c", DisplayName: "X", Phone: "(987) 654-3210"}
	order := LegacyOrder{CustomerName: "other", Phone: "987 654 3210"}
	if got := scoreCustomer(order, customer, weights); !almostEqual(got, 0.8) {
		t.Fatalf("formatted phone should still match, got %v", got)
	}
}

func TestMatchCustomers(t *testing.T) {
	weights := CurrentMatchWeights()
	candidates := []CustomerProfile{
		{ID: "a", DisplayName: "Arjun Rao"},
		{ID: "b", DisplayName: "Arjun Rao", Phone: "111"},
		{ID: "c", DisplayName: "Unrelated"},
	}
	order := LegacyOrder{CustomerName: "Arjun Rao", Phone: "111"}

	matches := MatchCustomers(order, candidates, weights)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches above threshold, got %d", len(matches))
	}
	if matches[0].Customer.ID != "b" {
		t.Fatalf("best match should be the phone+name customer, got %s", matches[0].Customer.ID)
	}
	if !almostEqual(matches[0].Confidence, 0.9) {
		t.Fatalf("best confidence = %v, want 0.9", matches[0].Confidence)
	}
	if matches[1].Customer.ID != "a" {
		t.Fatalf("second match should be the name-only customer, got %s", matches[1].Customer.ID)
	}
}

func TestMatchCustomersStableOnTies(t *testing.T) {
	weights := CurrentMatchWeights()
	candidates := []CustomerProfile{
		{ID: "first", DisplayName: "Same Name"},
		{ID: "second", DisplayName: "Same Name"},
	}
	order := LegacyOrder{CustomerName: "Same Name"}

	matches := MatchCustomers(order, candidates, weights)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Customer.ID != "first" || matches[1].Customer.ID != "second" {
		t.Fatalf("tied matches should keep scan order, got %s then %s",
			matches[0].Customer.ID, matches[1].Customer.ID)
	}
}

func TestMatchable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Priya Sharma", true},
		{"", false},
		{"   ", false},
		{"Walk-in Customer", false},
		{"walk-in customer", false},
	}
	for _, tt := range tests {
		got := Matchable(LegacyOrder{CustomerName: tt.name})
		if got != tt.want {
			t.Errorf("Matchable(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMatchWeightsByVersion(t *testing.T) {
	w, ok := MatchWeightsByVersion(1)
	if !ok {
		t.Fatal("version 1 should exist")
	}
	if w.Threshold != 0.6 {
		t.Fatalf("threshold = %v, want 0.6", w.Threshold)
	}
	if _, ok := MatchWeightsByVersion(99); ok {
		t.Fatal("unknown version should not resolve")
	}
}
