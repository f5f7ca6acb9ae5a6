package migration

import "testing"

func TestSanitizeDocID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"timestamp", "2026-08-31T12:00:00Z", "2026-08-31T12_00_00Z"},
		{"already clean", "ord-42", "ord-42"},
		{"empty", "", "unknown"},
		{"only unsafe runes", "???", "unknown"},
		{"leading and trailing separators", "//ord 7//", "ord_7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeDocID(tt.in); got != tt.want {
				t.Fatalf("sanitizeDocID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrderDocSuffix(t *testing.T) {
	t.Run("timestamp wins when usable", func(t *testing.T) {
		order := LegacyOrder{ID: "ord-1", Timestamp: "2026-08-31T12:00:00Z"}
		if got := orderDocSuffix(order); got != "2026-08-31T12_00_00Z" {
			t.Fatalf("unexpected suffix %q", got)
		}
	})

	t.Run("falls back to order id", func(t *testing.T) {
		a := LegacyOrder{ID: "ord-1", Timestamp: ""}
		b := LegacyOrder{ID: "ord-2", Timestamp: "???"}
		sa, sb := orderDocSuffix(a), orderDocSuffix(b)
		if sa != "ord-1" || sb != "ord-2" {
			t.Fatalf("expected order ids as suffixes, got %q and %q", sa, sb)
		}
		if sa == sb {
			t.Fatal("distinct orders must not share a document suffix")
		}
	})
}

func TestLegacyOrderFrom(t *testing.T) {
	order := legacyOrderFrom(map[string]any{
		"id":           "ord-9",
		"customerName": "Asha Rao",
		"phone":        "+91 98765 43210",
		"timestamp":    7.0,
	})
	if order.ID != "ord-9" || order.CustomerName != "Asha Rao" {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Timestamp != "" {
		t.Fatalf("non-string timestamp should read as empty, got %q", order.Timestamp)
	}
}
