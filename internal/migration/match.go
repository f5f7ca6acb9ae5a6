package migration

import (
	"sort"
	"strings"
)

// MatchWeights parameterizes customer matching. The table is versioned so a
// re-run after tuning can tell which weights produced an existing link.
type MatchWeights struct {
	Version           int     `json:"version"`
	NameMatch         float64 `json:"nameMatch"`
	PhoneMatch        float64 `json:"phoneMatch"`
	NameAndPhoneBoost float64 `json:"nameAndPhoneBoost"`
	AddressBoost      float64 `json:"addressBoost"`
	Threshold         float64 `json:"threshold"`
}

var matchWeightVersions = []MatchWeights{
	{
		Version:           1,
		NameMatch:         0.6,
		PhoneMatch:        0.8,
		NameAndPhoneBoost: 0.1,
		AddressBoost:      0.05,
		Threshold:         0.6,
	},
}

func CurrentMatchWeights() MatchWeights {
	return matchWeightVersions[len(matchWeightVersions)-1]
}

func MatchWeightsByVersion(version int) (MatchWeights, bool) {
	for _, w := range matchWeightVersions {
		if w.Version == version {
			return w, true
		}
	}
	return MatchWeights{}, false
}

// CustomerProfile is the shape of a customers collection document that
// matching reads. Extra fields pass through Firestore untouched.
type CustomerProfile struct {
	ID          string   `firestore:"-"`
	DisplayName string   `firestore:"displayName"`
	Phone       string   `firestore:"phone"`
	Addresses   []string `firestore:"addresses"`
}

// LegacyOrder carries the fields of a historical order that matter for
// matching and for the migrated document's identity.
type LegacyOrder struct {
	ID              string
	CustomerName    string
	Phone           string
	DeliveryAddress string
	Timestamp       string
}

type Match struct {
	Customer   CustomerProfile
	Confidence float64
}

// walkInName marks anonymous counter orders that can never be attached to an
// account.
const walkInName = "Walk-in Customer"

func Matchable(order LegacyOrder) bool {
	name := strings.TrimSpace(order.CustomerName)
	return name != "" && !strings.EqualFold(name, walkInName)
}

// scoreCustomer computes the confidence that a customer owns the order. Exact
// display name equality and exact phone equality anchor the score; a phone
// match on top of a name match earns a boost, and each saved address that
// contains the order's delivery street text adds a smaller one.
func scoreCustomer(order LegacyOrder, customer CustomerProfile, w MatchWeights) float64 {
	confidence := 0.0

	nameMatched := false
	orderName := strings.TrimSpace(order.CustomerName)
	if orderName != "" && strings.EqualFold(orderName, strings.TrimSpace(customer.DisplayName)) {
		confidence = w.NameMatch
		nameMatched = true
	}

	orderPhone := normalizePhone(order.Phone)
	if orderPhone != "" && orderPhone == normalizePhone(customer.Phone) {
		if nameMatched {
			confidence = w.PhoneMatch + w.NameAndPhoneBoost
		} else {
			confidence = w.PhoneMatch
		}
	}

	street := strings.ToLower(strings.TrimSpace(order.DeliveryAddress))
	if street != "" && confidence > 0 {
		for _, addr := range customer.Addresses {
			if strings.Contains(strings.ToLower(addr), street) {
				confidence += w.AddressBoost
			}
		}
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// MatchCustomers ranks candidates against an order and returns those at or
// above the confidence threshold, best first. The sort is stable, so equal
// confidences keep the candidate scan order.
func MatchCustomers(order LegacyOrder, candidates []CustomerProfile, w MatchWeights) []Match {
	var matches []Match
	for _, c := range candidates {
		confidence := scoreCustomer(order, c, w)
		if confidence >= w.Threshold {
			matches = append(matches, Match{Customer: c, Confidence: confidence})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
