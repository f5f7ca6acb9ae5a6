package utils

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
)

var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

type ImageMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func ValidateImageContentType(contentType string) bool {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	if ct == "" {
		return false
	}
	return allowedImageContentTypes[ct]
}

func DetectContentType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return http.DetectContentType(sample)
}

// EncodePNGFitInside decodes an uploaded image, shrinks it to fit inside a
// maxSide square without upscaling, and re-encodes it as PNG. Payment QR
// codes must survive re-encoding pixel-exact, so the output is lossless.
// The returned meta carries the stored dimensions, after any shrink, and
// the source's decoded format.
func EncodePNGFitInside(data []byte, maxSide int) ([]byte, ImageMeta, error) {
	if maxSide <= 0 {
		return nil, ImageMeta{}, errors.New("maxSide must be > 0")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageMeta{}, err
	}

	b := img.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		b = img.Bounds()
	}
	meta := ImageMeta{Width: b.Dx(), Height: b.Dy(), Format: format}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ImageMeta{}, err
	}
	return buf.Bytes(), meta, nil
}
