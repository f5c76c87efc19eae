package media

import (
	"net/http"
	"path/filepath"
	"strings"

	"artist-portfolio/internal/apperr"
)

const MaxImageBytes = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImage checks the declared type, the sniffed type and the size.
// head is the first bytes of the file (up to 512).
func ValidateImage(filename, declared string, size int64, head []byte) (string, error) {
	if size > MaxImageBytes {
		return "", apperr.ValidationError("Image too large", apperr.FieldError{
			Field: "file", Message: "Must be 5MB or smaller",
		})
	}
	if size == 0 {
		return "", apperr.ValidationError("Empty file", apperr.FieldError{Field: "file", Message: "This field is required"})
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", invalidType()
	}
	if declared != "" && !allowedTypes[strings.ToLower(declared)] {
		return "", invalidType()
	}

	sniffed := http.DetectContentType(head)
	if !allowedTypes[sniffed] {
		return "", invalidType()
	}
	return sniffed, nil
}

func invalidType() error {
	return apperr.ValidationError("Unsupported image type", apperr.FieldError{
		Field: "file", Message: "Please upload a JPEG, PNG, or WebP image",
	})
}
