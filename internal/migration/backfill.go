package migration

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"spiceroute-services/internal/jsonstore"
)

const (
	customersCollection = "customers"
	ordersCollection    = "orders"
	ledgerCollection    = "migrationLedger"

	// Flat pause between orders so the document store is never hammered by
	// the sequential write loop.
	backfillPacing = 100 * time.Millisecond
)

type ledgerEntry struct {
	OrderID        string  `firestore:"orderId"`
	Status         string  `firestore:"status"`
	CustomerID     string  `firestore:"customerId,omitempty"`
	Confidence     float64 `firestore:"confidence,omitempty"`
	WeightsVersion int     `firestore:"weightsVersion"`
	ProcessedAt    string  `firestore:"processedAt"`
}

// BackfillCustomerOrders attaches historical orders to customer accounts.
// Each order is matched against the customers collection; matches at or above
// the confidence threshold are written under a deterministic document ID so
// re-runs overwrite instead of duplicating. A ledger records the outcome per
// order, and already-migrated orders are skipped on re-run.
func BackfillCustomerOrders(ctx context.Context, client *firestore.Client, store *jsonstore.Store, logger *zap.Logger) Summary {
	summary := Summary{Success: true}
	weights := CurrentMatchWeights()

	var file struct {
		Orders []map[string]any `json:"orders"`
	}
	if err := store.Load("orders.json", &file); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			return summary
		}
		return Summary{Success: false, Errors: []string{fmt.Sprintf("load orders: %v", err)}}
	}

	customers, err := loadCustomers(ctx, client)
	if err != nil {
		return Summary{Success: false, Errors: []string{fmt.Sprintf("load customers: %v", err)}}
	}

	migratedAt := time.Now().UTC().Format(time.RFC3339)
	migrated := 0

	for _, raw := range file.Orders {
		select {
		case <-ctx.Done():
			summary.Success = false
			summary.Errors = append(summary.Errors, ctx.Err().Error())
			return summary
		case <-time.After(backfillPacing):
		}

		order := legacyOrderFrom(raw)
		if !Matchable(order) {
			continue
		}

		ledgerRef := client.Collection(ledgerCollection).Doc("backfill_" + sanitizeDocID(order.ID))
		if done, err := alreadyMigrated(ctx, ledgerRef); err == nil && done {
			continue
		}

		matches := MatchCustomers(order, customers, weights)
		if len(matches) == 0 {
			writeLedger(ctx, ledgerRef, ledgerEntry{
				OrderID:        order.ID,
				Status:         "unmatched",
				WeightsVersion: weights.Version,
				ProcessedAt:    migratedAt,
			})
			continue
		}

		best := matches[0]
		docID := best.Customer.ID + "_" + orderDocSuffix(order)

		data := make(map[string]any, len(raw)+4)
		for k, v := range raw {
			data[k] = v
		}
		data["customerId"] = best.Customer.ID
		data["matchConfidence"] = best.Confidence
		data["migratedFrom"] = "orders.json"
		data["migratedAt"] = migratedAt

		if _, err := client.Collection(ordersCollection).Doc(docID).Set(ctx, data); err != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", order.ID, err))
			logger.Warn("order backfill failed", zap.String("orderId", order.ID), zap.Error(err))
			writeLedger(ctx, ledgerRef, ledgerEntry{
				OrderID:        order.ID,
				Status:         "failed",
				WeightsVersion: weights.Version,
				ProcessedAt:    migratedAt,
			})
			continue
		}

		migrated++
		writeLedger(ctx, ledgerRef, ledgerEntry{
			OrderID:        order.ID,
			Status:         "migrated",
			CustomerID:     best.Customer.ID,
			Confidence:     best.Confidence,
			WeightsVersion: weights.Version,
			ProcessedAt:    migratedAt,
		})
		logger.Info("order backfilled",
			zap.String("orderId", order.ID),
			zap.String("customerId", best.Customer.ID),
			zap.Float64("confidence", best.Confidence))
	}

	if migrated > 0 {
		summary.MigratedCollections = 1
	}
	summary.TotalDocuments = migrated
	return summary
}

func loadCustomers(ctx context.Context, client *firestore.Client) ([]CustomerProfile, error) {
	var customers []CustomerProfile
	iter := client.Collection(customersCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var profile CustomerProfile
		if err := doc.DataTo(&profile); err != nil {
			continue
		}
		profile.ID = doc.Ref.ID
		customers = append(customers, profile)
	}
	return customers, nil
}

func alreadyMigrated(ctx context.Context, ref *firestore.DocumentRef) (bool, error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		return false, err
	}
	var entry ledgerEntry
	if err := snap.DataTo(&entry); err != nil {
		return false, err
	}
	return entry.Status == "migrated", nil
}

// Ledger writes are best effort; a failed ledger write only costs a re-check
// on the next run.
func writeLedger(ctx context.Context, ref *firestore.DocumentRef, entry ledgerEntry) {
	_, _ = ref.Set(ctx, entry)
}

func legacyOrderFrom(raw map[string]any) LegacyOrder {
	return LegacyOrder{
		ID:              stringField(raw, "id"),
		CustomerName:    stringField(raw, "customerName"),
		Phone:           stringField(raw, "phone"),
		DeliveryAddress: stringField(raw, "deliveryAddress"),
		Timestamp:       stringField(raw, "timestamp"),
	}
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

var docIDUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeDocID(v string) string {
	clean := docIDUnsafe.ReplaceAllString(v, "_")
	clean = strings.Trim(clean, "_")
	if clean == "" {
		return "unknown"
	}
	return clean
}

// orderDocSuffix keys the backfilled document by the order timestamp. An
// order whose timestamp sanitizes away falls back to its own ID so two
// timestampless orders never collapse onto one document.
func orderDocSuffix(order LegacyOrder) string {
	clean := strings.Trim(docIDUnsafe.ReplaceAllString(order.Timestamp, "_"), "_")
	if clean != "" {
		return clean
	}
	return sanitizeDocID(order.ID)
}
