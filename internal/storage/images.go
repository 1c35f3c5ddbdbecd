// Package storage uploads product images to S3-compatible object storage.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// MaxImageSize bounds a single upload.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type objectPutter interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type ImageStore struct {
	client    objectPutter
	bucket    string
	publicURL string
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes returned object URLs. Defaults to the endpoint.
	PublicURL string
}

// NewImageStore connects to the object store and creates the bucket if
// it does not exist yet.
func NewImageStore(ctx context.Context, opts Options) (*ImageStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "make bucket")
		}
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if opts.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + opts.Endpoint
	}
	return newImageStore(client, opts.Bucket, publicURL), nil
}

func newImageStore(client objectPutter, bucket, publicURL string) *ImageStore {
	return &ImageStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload stores the image under a fresh name and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", models.NewValidationError("file", "unsupported image type %q", contentType)
	}
	if size <= 0 || size > MaxImageSize {
		return "", models.NewValidationError("file", "image must be between 1 byte and %d bytes", MaxImageSize)
	}

	object := "products/" + uuid.NewString() + ext
	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}
	return s.publicURL + "/" + s.bucket + "/" + object, nil
}
