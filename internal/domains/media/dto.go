package media

import (
	"fmt"
	"strings"
)

const (
	// MaxImagesPerProduct caps the gallery size, counting what is
	// already uploaded plus the current selection.
	MaxImagesPerProduct = 5

	// MaxImageSize is the per-file byte limit (5MB).
	MaxImageSize = 5 * 1024 * 1024
)

var allowedContentTypes = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
	"image/gif":  "GIF",
	"image/webp": "WebP",
}

// Upload is one file from the selection dialog, already read into memory.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// ValidateUploads checks the whole selection against the gallery rules
// and reports every problem in a single aggregated error. A selection
// with any invalid file is rejected as a whole; nothing is partially
// accepted.
func ValidateUploads(existing int, uploads []Upload) error {
	var problems []string

	if existing+len(uploads) > MaxImagesPerProduct {
		problems = append(problems, fmt.Sprintf(
			"maximum %d images per product (%d selected, %d already uploaded)",
			MaxImagesPerProduct, len(uploads), existing))
	}

	for _, u := range uploads {
		if u.Size > MaxImageSize {
			problems = append(problems, fmt.Sprintf(
				"%s: file exceeds the %dMB limit", u.FileName, MaxImageSize/(1024*1024)))
		}
		if _, ok := allowedContentTypes[u.ContentType]; !ok {
			problems = append(problems, fmt.Sprintf(
				"%s: unsupported file type %q (allowed: JPEG, PNG, GIF, WebP)",
				u.FileName, u.ContentType))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

// Payload converts an accepted upload into the collection payload.
func (u Upload) Payload() Image {
	return Image{
		FileName:    u.FileName,
		ContentType: u.ContentType,
		SizeBytes:   u.Size,
		Data:        u.Data,
	}
}
