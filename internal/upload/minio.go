package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinIOConfig holds the connection of a MinIOStore.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base url the bucket is reachable under, for example a CDN.
	// Empty uses <scheme>://<endpoint>/<bucket>.
	PublicURL string
	MaxSize   int64
}

// MinIOStore keeps images in an s3 compatible bucket.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	maxSize int64
}

// NewMinIOStore connects to the endpoint and creates the bucket if it does not exist.
func NewMinIOStore(ctx context.Context, cfg MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}

		log.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	return &MinIOStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: PublicBaseURL(cfg),
		maxSize: cfg.MaxSize,
	}, nil
}

// PublicBaseURL returns the url prefix of the stored objects.
func PublicBaseURL(cfg MinIOConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// ObjectName returns a collision free object name keeping the extension of the image.
func ObjectName(img *Image) string {
	return "country_" + uuid.NewString() + img.Ext
}

// Save implements Store.
func (s *MinIOStore) Save(ctx context.Context, name string, size int64, r io.Reader) (string, error) {
	img, err := Inspect(name, size, s.maxSize, r)
	if err != nil {
		return "", err
	}

	object := ObjectName(img)

	_, err = s.client.PutObject(ctx, s.bucket, object, img.Body, img.Size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	log.Debug().Str("object", object).Str("bucket", s.bucket).Msg("image uploaded")

	return s.baseURL + "/" + object, nil
}

// Remove implements Store.
func (s *MinIOStore) Remove(ctx context.Context, publicPath string) error {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	object := strings.TrimPrefix(publicPath, prefix)
	if object == "" || strings.Contains(object, "/") {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
