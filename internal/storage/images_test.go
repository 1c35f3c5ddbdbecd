package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type fakePutter struct {
	bucket, object, contentType string
	body                        string
}

func (f *fakePutter) PutObject(_ context.Context, bucket, object string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.bucket, f.object, f.contentType, f.body = bucket, object, opts.ContentType, string(b)
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func TestUpload(t *testing.T) {
	put := &fakePutter{}
	store := newImageStore(put, "images", "https://cdn.example.com/")

	url, err := store.Upload(context.Background(), strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "images", put.bucket)
	assert.Equal(t, "image/png", put.contentType)
	assert.Equal(t, "png-bytes", put.body)
	assert.True(t, strings.HasPrefix(put.object, "products/"))
	assert.True(t, strings.HasSuffix(put.object, ".png"))
	assert.Equal(t, "https://cdn.example.com/images/"+put.object, url)
}

func TestUploadRejects(t *testing.T) {
	store := newImageStore(&fakePutter{}, "images", "http://localhost:9000")

	_, err := store.Upload(context.Background(), strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = store.Upload(context.Background(), strings.NewReader("x"), MaxImageSize+1, "image/jpeg")
	assert.ErrorIs(t, err, models.ErrValidation)
}
