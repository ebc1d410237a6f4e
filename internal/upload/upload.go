// Package upload stores the country images and hands out their public paths.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrTooLarge is returned for images above the configured size limit.
	ErrTooLarge = errors.New("image is too large")
	// ErrUnsupportedType is returned for files that are not an allowed image type.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = errors.New("image is empty")
)

// sniffLen is the number of leading bytes inspected to detect the file type.
const sniffLen = 3072

// allowedTypes maps the accepted image types to their file extension.
var allowedTypes = map[string]string{ //nolint:gochecknoglobals
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store persists images.
type Store interface {
	// Save stores the image read from r and returns the path or url under
	// which it is publicly reachable. name is the client side file name.
	Save(ctx context.Context, name string, size int64, r io.Reader) (string, error)
	// Remove deletes an image previously returned by Save. Paths the store
	// did not create are ignored.
	Remove(ctx context.Context, publicPath string) error
}

// Image is a validated upload ready to be written.
type Image struct {
	Name        string
	ContentType string
	Ext         string
	Size        int64
	Body        io.Reader
}

// Inspect checks size and content of an upload. The type is detected from
// the bytes, the client supplied content type is not trusted.
func Inspect(name string, size, maxSize int64, r io.Reader) (*Image, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}

	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, size, maxSize)
	}

	head := make([]byte, sniffLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	head = head[:n]
	if n == 0 {
		return nil, ErrEmptyFile
	}

	mt := mimetype.Detect(head)

	var (
		contentType string
		ext         string
	)

	for m := mt; m != nil; m = m.Parent() {
		if e, ok := allowedTypes[m.String()]; ok {
			contentType, ext = m.String(), e

			break
		}
	}

	if contentType == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	return &Image{
		Name:        SanitizeName(name, ext),
		ContentType: contentType,
		Ext:         ext,
		Size:        size,
		Body:        io.MultiReader(bytes.NewReader(head), r),
	}, nil
}

// SanitizeName reduces a client file name to a safe base name. ext is used
// when the name has no extension.
func SanitizeName(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")

	if base == "" {
		base = "image"
	}

	if filepath.Ext(base) == "" {
		base += ext
	}

	return base
}
