// Package validation holds the input checks every review endpoint runs
// before touching storage or the database.
package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTextLength is counted in characters, not bytes.
	MaxTextLength = 200
	// MaxImageSize is 10MB.
	MaxImageSize int64 = 10 << 20
)

var (
	ErrTextTooLong     = errors.New("contents must be at most 200 characters")
	ErrFileMissing     = errors.New("image file is required")
	ErrFileTooLarge    = errors.New("image must not exceed 10MB")
	ErrInvalidImageExt = errors.New("invalid image extension")
)

var allowedImageExts = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
}

// IsValidTextLength reports whether text fits in MaxTextLength characters.
func IsValidTextLength(text string) bool {
	return utf8.RuneCountInString(text) <= MaxTextLength
}

// IsExceedSize reports whether size is over the upload limit. True means invalid.
func IsExceedSize(size int64) bool {
	return size > MaxImageSize
}

// IsValidImageExt checks the extension against the allow-list, ignoring case.
func IsValidImageExt(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return false
	}
	_, ok := allowedImageExts[strings.ToLower(ext)]
	return ok
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrFileMissing) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrInvalidImageExt)
}

func ValidateText(text string) error {
	if !IsValidTextLength(text) {
		return ErrTextTooLong
	}
	return nil
}

// ValidateImage checks an uploaded image header; size first, then extension.
func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileMissing
	}
	if IsExceedSize(file.Size) {
		return ErrFileTooLarge
	}
	if !IsValidImageExt(file.Filename) {
		return ErrInvalidImageExt
	}
	return nil
}
