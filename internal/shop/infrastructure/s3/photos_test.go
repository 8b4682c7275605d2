package s3

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Endpoint:     "localhost:9000",
		Bucket:       "samples",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		UsePathStyle: true,
		PresignTTL:   10 * time.Minute,
	}
}

func TestNewPhotoStore_Validation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := testConfig()
	cfg.Bucket = ""
	_, err := NewPhotoStore(context.Background(), cfg, log)
	assert.ErrorContains(t, err, "bucket is required")

	cfg = testConfig()
	cfg.SecretKey = ""
	_, err = NewPhotoStore(context.Background(), cfg, log)
	assert.ErrorContains(t, err, "credentials are required")
}

func TestUploadURL(t *testing.T) {
	store, err := NewPhotoStore(context.Background(), testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	now := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	up, err := store.UploadURL(context.Background(), "farmer1", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Key, "samples/farmer1/"), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".png"), up.Key)
	assert.True(t, strings.HasPrefix(up.URL, "http://localhost:9000/samples/"+up.Key), up.URL)
	assert.Contains(t, up.URL, "X-Amz-Signature=")
	assert.Equal(t, now.Add(10*time.Minute), up.ExpiresAt)

	_, err = store.UploadURL(context.Background(), "farmer1", "application/pdf")
	assert.ErrorContains(t, err, "unsupported content type")
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000"))
	assert.Equal(t, "https://s3.eu-west-2.amazonaws.com", endpointURL("https://s3.eu-west-2.amazonaws.com"))
}
