package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"spiceroute-services/internal/utils"
	"spiceroute-services/pkg/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const paymentQRMaxSide = 1024

// PaymentQRUpload accepts a multipart "file" field, normalizes the image to a
// bounded PNG, and stores it in the object store under a unique key. The
// returned URL is what inventory items reference in qrCodeImage.
func (h *Handler) PaymentQRUpload(w http.ResponseWriter, r *http.Request) {
	if h.Objects == nil {
		response.Error(w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Object storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(h.Config.MaxFileSizeBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "A file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.Config.MaxFileSizeBytes+1))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read upload")
		return
	}
	if int64(len(data)) > h.Config.MaxFileSizeBytes {
		response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds the size limit")
		return
	}

	ct := header.Header.Get("Content-Type")
	if !utils.ValidateImageContentType(ct) {
		ct = utils.DetectContentType(data)
	}
	if !utils.ValidateImageContentType(ct) {
		response.Error(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", "Only JPEG, PNG and GIF images are accepted")
		return
	}

	encoded, meta, err := utils.EncodePNGFitInside(data, paymentQRMaxSide)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, "INVALID_IMAGE", "Could not decode the uploaded image")
		return
	}

	key := fmt.Sprintf("payment-qr/%s/%s.png", time.Now().UTC().Format("2006/01"), uuid.NewString())
	url, err := h.Objects.PutObject(r.Context(), key, encoded, "image/png")
	if err != nil {
		h.Logger.Error("payment qr upload failed", zap.String("key", key), zapError(err))
		response.Error(w, http.StatusBadGateway, "UPLOAD_FAILED", "Failed to store the uploaded image")
		return
	}

	response.Created(w, map[string]any{
		"url":    url,
		"key":    key,
		"width":  meta.Width,
		"height": meta.Height,
		"format": meta.Format,
	})
}
