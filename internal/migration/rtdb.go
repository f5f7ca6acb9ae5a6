package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/db"
	"go.uber.org/zap"
)

// MigrateRealtimeDatabase copies the entire legacy Realtime Database tree
// into Firestore. Every top-level key becomes a collection: array values
// write one document per index, object values one document per child key, and
// primitives a single sentinel document. Per-key failures are logged and the
// job moves on.
func MigrateRealtimeDatabase(ctx context.Context, rtdb *db.Client, client *firestore.Client, logger *zap.Logger) Summary {
	summary := Summary{Success: true}
	migratedAt := time.Now().UTC().Format(time.RFC3339)

	var tree map[string]any
	if err := rtdb.NewRef("/").Get(ctx, &tree); err != nil {
		return Summary{Success: false, Errors: []string{fmt.Sprintf("read tree: %v", err)}}
	}

	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		docs := decomposeTreeValue(key, tree[key])
		writer := newChunkWriter(client)

		var writeErr error
		for _, doc := range docs {
			doc.Data["migratedFrom"] = "realtime-database/" + key
			doc.Data["migratedAt"] = migratedAt
			ref := client.Collection(key).Doc(doc.ID)
			if writeErr = writer.Set(ctx, ref, doc.Data); writeErr != nil {
				break
			}
		}
		if writeErr == nil {
			writeErr = writer.Flush(ctx)
		}
		if writeErr != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", key, writeErr))
			logger.Warn("tree key migration failed", zap.String("key", key), zap.Error(writeErr))
			continue
		}

		summary.MigratedCollections++
		summary.TotalDocuments += writer.Written()
		logger.Info("tree key migrated", zap.String("key", key), zap.Int("documents", writer.Written()))
	}

	return summary
}

func decomposeTreeValue(key string, value any) []docSpec {
	switch v := value.(type) {
	case []any:
		return docsFromArray(key, v)
	case map[string]any:
		docs := make([]docSpec, 0, len(v))
		childKeys := make([]string, 0, len(v))
		for child := range v {
			childKeys = append(childKeys, child)
		}
		sort.Strings(childKeys)
		for _, child := range childKeys {
			data, ok := v[child].(map[string]any)
			if !ok {
				data = map[string]any{"value": v[child]}
			}
			docs = append(docs, docSpec{ID: child, Data: data})
		}
		return docs
	default:
		return []docSpec{{ID: key, Data: map[string]any{"value": value}}}
	}
}
