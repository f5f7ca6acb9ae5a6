package migration

import (
	"context"

	"cloud.google.com/go/firestore"
)

// Firestore rejects batches above 500 operations; committing at 400 leaves
// headroom for metadata writes sharing the batch.
const batchChunkSize = 400

// chunkWriter accumulates document sets and commits them in bounded batches.
// Each chunk commits atomically on its own, so a failure loses at most one
// chunk of progress rather than the whole collection.
type chunkWriter struct {
	client  *firestore.Client
	batch   *firestore.WriteBatch
	pending int
	written int
}

func newChunkWriter(client *firestore.Client) *chunkWriter {
	return &chunkWriter{client: client}
}

func (w *chunkWriter) Set(ctx context.Context, ref *firestore.DocumentRef, data map[string]any) error {
	if w.batch == nil {
		w.batch = w.client.Batch()
	}
	w.batch.Set(ref, data)
	w.pending++
	if w.pending >= batchChunkSize {
		return w.Flush(ctx)
	}
	return nil
}

func (w *chunkWriter) Flush(ctx context.Context) error {
	if w.batch == nil || w.pending == 0 {
		return nil
	}
	if _, err := w.batch.Commit(ctx); err != nil {
		return err
	}
	w.written += w.pending
	w.pending = 0
	w.batch = nil
	return nil
}

func (w *chunkWriter) Written() int {
	return w.written
}
