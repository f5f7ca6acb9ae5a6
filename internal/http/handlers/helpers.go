package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"spiceroute-services/internal/jsonstore"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func zapError(err error) zap.Field {
	return zap.Error(err)
}

func readPathString(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads a bounded JSON body into v.
func (h *Handler) decodeBody(r *http.Request, v any) error {
	limit := h.Config.MaxFileSizeBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return err
	}
	if int64(len(body)) > limit {
		return errBodyTooLarge
	}
	return json.Unmarshal(body, v)
}

// loadOrDefault fills v from the named file, treating a missing file as the
// zero value so first-run state is not an error.
func (h *Handler) loadOrDefault(name string, v any) error {
	err := h.Store.Load(name, v)
	if errors.Is(err, jsonstore.ErrNotFound) {
		return nil
	}
	return err
}
