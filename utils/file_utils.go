// utils/file_utils.go
package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// MaxImageSize is the maximum accepted upload size (5MB)
	MaxImageSize = 5 * 1024 * 1024
	// maxImageDim is the bounding box profile pictures are fitted into
	maxImageDim = 1024
)

// Allowed profile picture extensions
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateImageFile checks the extension and size of an uploaded picture.
func ValidateImageFile(filename string, size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("file too large, maximum size is %d bytes", MaxImageSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image format, allowed formats: jpg, jpeg, png")
	}

	return nil
}

// ImageContentType returns the MIME type for an allowed image extension.
func ImageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// NewObjectKey generates a unique object-store key for an upload, keeping
// the original extension.
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}

// NormalizeImage decodes an uploaded picture, fits it into the
// maxImageDim bounding box and re-encodes it. Re-encoding also strips
// anything that is not plain pixel data from the original file.
func NormalizeImage(data []byte, filename string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDim || bounds.Dy() > maxImageDim {
		img = imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
