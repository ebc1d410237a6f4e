package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DiskStore writes images below Dir. They are served by the web server
// under PublicPath.
type DiskStore struct {
	Dir        string
	PublicPath string
	MaxSize    int64

	now func() time.Time
}

// NewDiskStore creates dir if needed.
func NewDiskStore(dir, publicPath string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &DiskStore{
		Dir:        dir,
		PublicPath: "/" + strings.Trim(publicPath, "/"),
		MaxSize:    maxSize,
		now:        time.Now,
	}, nil
}

// Save implements Store. Files are named <unix millis>-<client name>.
func (s *DiskStore) Save(_ context.Context, name string, size int64, r io.Reader) (string, error) {
	img, err := Inspect(name, size, s.MaxSize, r)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%d-%s", s.now().UnixMilli(), img.Name)

	f, err := os.OpenFile(filepath.Join(s.Dir, fileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:mnd
	if errors.Is(err, fs.ErrExist) {
		fileName = fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], img.Name)
		f, err = os.OpenFile(filepath.Join(s.Dir, fileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:mnd
	}

	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(img.Body, img.Size+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	// more bytes than announced
	if err == nil && written > img.Size {
		err = ErrTooLarge
	}

	if err != nil {
		_ = os.Remove(filepath.Join(s.Dir, fileName))

		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	log.Debug().Str("file", fileName).Int64("bytes", written).Str("type", img.ContentType).Msg("image stored")

	return path.Join(s.PublicPath, fileName), nil
}

// Remove implements Store.
func (s *DiskStore) Remove(_ context.Context, publicPath string) error {
	prefix := s.PublicPath + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(publicPath, prefix))
	if name == "." || name == "/" || name == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}

	return nil
}
