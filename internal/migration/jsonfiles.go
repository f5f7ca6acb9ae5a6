package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// jsonFileCollections is the allow-list of data files eligible for migration,
// mapped to their destination Firestore collections. Files outside this list
// are never touched.
var jsonFileCollections = map[string]string{
	"staff-credentials.json": "staffCredentials",
	"orders.json":            "orders",
	"analytics_data.json":    "analytics",
	"todays-special.json":    "todaysSpecial",
	"menu.json":              "menu",
	"combos.json":            "combos",
	"offers.json":            "offers",
	"menu-availability.json": "menuAvailability",
	"inventory.json":         "inventory",
	"blog-posts.json":        "blogPosts",
	"about-us.json":          "aboutUs",
	"reviews.json":           "reviews",
	"event-bookings.json":    "eventBookings",
}

type docSpec struct {
	ID   string
	Data map[string]any
}

// Summary is the always-resolved result of a migration job. Partial
// completion is the accepted outcome; Errors records what was skipped.
type Summary struct {
	Success             bool     `json:"success"`
	MigratedCollections int      `json:"migratedCollections"`
	TotalDocuments      int      `json:"totalDocuments"`
	Errors              []string `json:"errors,omitempty"`
}

// fileWriter is the per-collection write seam behind MigrateJSONFiles. The
// Firestore-backed implementation commits in chunks.
type fileWriter interface {
	Set(ctx context.Context, id string, data map[string]any) error
	Flush(ctx context.Context) error
	Written() int
}

type collectionWriter struct {
	coll  *firestore.CollectionRef
	chunk *chunkWriter
}

func (w *collectionWriter) Set(ctx context.Context, id string, data map[string]any) error {
	return w.chunk.Set(ctx, w.coll.Doc(id), data)
}

func (w *collectionWriter) Flush(ctx context.Context) error { return w.chunk.Flush(ctx) }

func (w *collectionWriter) Written() int { return w.chunk.Written() }

// MigrateJSONFiles copies every allow-listed JSON file under dataDir into its
// Firestore collection. Failures are recorded per file and the job continues.
func MigrateJSONFiles(ctx context.Context, client *firestore.Client, dataDir string, logger *zap.Logger) Summary {
	return migrateJSONFiles(ctx, func(collection string) fileWriter {
		return &collectionWriter{coll: client.Collection(collection), chunk: newChunkWriter(client)}
	}, dataDir, logger)
}

func migrateJSONFiles(ctx context.Context, newWriter func(collection string) fileWriter, dataDir string, logger *zap.Logger) Summary {
	summary := Summary{Success: true}
	migratedAt := time.Now().UTC().Format(time.RFC3339)

	names := make([]string, 0, len(jsonFileCollections))
	for name := range jsonFileCollections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		collection := jsonFileCollections[name]
		raw, err := os.ReadFile(filepath.Join(dataDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
			logger.Warn("file read failed", zap.String("file", name), zap.Error(err))
			continue
		}

		docs, err := decomposeFile(name, raw)
		if err != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
			logger.Warn("file decompose failed", zap.String("file", name), zap.Error(err))
			continue
		}

		written, err := writeFileDocs(ctx, newWriter(collection), name, migratedAt, docs)
		if err != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
			logger.Warn("file write failed", zap.String("file", name), zap.Error(err))
			continue
		}

		summary.MigratedCollections++
		summary.TotalDocuments += written
		logger.Info("file migrated",
			zap.String("file", name),
			zap.String("collection", collection),
			zap.Int("documents", written))
	}

	return summary
}

// writeFileDocs stamps provenance fields and writes every document, then
// commits the trailing partial chunk. A file counts as a migrated collection
// only when this returns nil.
func writeFileDocs(ctx context.Context, w fileWriter, name, migratedAt string, docs []docSpec) (int, error) {
	for _, doc := range docs {
		doc.Data["migratedFrom"] = name
		doc.Data["migratedAt"] = migratedAt
		if err := w.Set(ctx, doc.ID, doc.Data); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(ctx); err != nil {
		return 0, err
	}
	return w.Written(), nil
}

// decomposeFile splits a data file into per-document writes. The shape
// branches mirror how each file is actually laid out: an orders array, a menu
// array with nested products, a top-level array, an object wrapping a single
// array, or an arbitrary object stored as one document.
func decomposeFile(name string, raw []byte) ([]docSpec, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}

	base := docIDBase(name)

	switch v := top.(type) {
	case []any:
		return docsFromArray(base, v), nil
	case map[string]any:
		if name == "menu.json" {
			if menu, ok := v["menu"].([]any); ok {
				return docsFromMenu(menu), nil
			}
		}
		if arr, key, ok := singleArrayValue(v); ok {
			return docsFromArray(key, arr), nil
		}
		return []docSpec{{ID: base, Data: v}}, nil
	default:
		// Primitive top-level value, stored as a sentinel document.
		return []docSpec{{ID: base, Data: map[string]any{"value": top}}}, nil
	}
}

// docsFromMenu flattens menu categories into one document per product with
// the category name carried along.
func docsFromMenu(categories []any) []docSpec {
	var docs []docSpec
	for ci, rawCat := range categories {
		cat, ok := rawCat.(map[string]any)
		if !ok {
			continue
		}
		categoryName, _ := cat["category"].(string)
		products, _ := cat["products"].([]any)
		for pi, rawProduct := range products {
			product, ok := rawProduct.(map[string]any)
			if !ok {
				continue
			}
			data := make(map[string]any, len(product)+1)
			for k, val := range product {
				data[k] = val
			}
			data["category"] = categoryName
			docs = append(docs, docSpec{
				ID:   elementDocID("menu", fmt.Sprintf("%d_%d", ci, pi), product),
				Data: data,
			})
		}
	}
	return docs
}

func docsFromArray(base string, arr []any) []docSpec {
	docs := make([]docSpec, 0, len(arr))
	for i, raw := range arr {
		element, ok := raw.(map[string]any)
		if !ok {
			element = map[string]any{"value": raw}
		}
		docs = append(docs, docSpec{
			ID:   elementDocID(base, fmt.Sprintf("%d", i), element),
			Data: element,
		})
	}
	return docs
}

// elementDocID prefers the element's own id so reruns overwrite instead of
// duplicating; index-derived IDs are the fallback.
func elementDocID(base, fallback string, element map[string]any) string {
	switch id := element["id"].(type) {
	case string:
		if strings.TrimSpace(id) != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%s_%d", base, int64(id))
	}
	return base + "_" + fallback
}

// singleArrayValue reports whether the object wraps exactly one array field,
// the common {"orders": [...]} file layout.
func singleArrayValue(obj map[string]any) ([]any, string, bool) {
	if len(obj) != 1 {
		return nil, "", false
	}
	for key, val := range obj {
		if arr, ok := val.([]any); ok {
			return arr, key, true
		}
	}
	return nil, "", false
}

func docIDBase(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(base, ".", "_")
}
