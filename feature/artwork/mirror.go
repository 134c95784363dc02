// Package artwork mirrors game cover images into object storage so the
// presentation and print layers never hotlink the catalog's CDN.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gameshelf/core/storage"
	"gameshelf/feature/collection"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Stats summarizes one mirror run.
type Stats struct {
	Mirrored int
	Skipped  int
	Failed   int
}

// Mirror copies cover and thumbnail images into the configured bucket.
type Mirror struct {
	client storage.Client
	bucket string
	http   *http.Client
	logger *zap.Logger
}

// NewMirror wires a mirror. The HTTP client may be shared with the catalog
// client so both respect the same timeouts; nil falls back to a default.
func NewMirror(client storage.Client, bucket string, httpClient *http.Client, logger *zap.Logger) *Mirror {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Mirror{client: client, bucket: bucket, http: httpClient, logger: logger}
}

// Run ensures the bucket exists and mirrors both image variants for every
// game. Individual download or upload failures are logged and counted but
// do not abort the run.
func (m *Mirror) Run(ctx context.Context, games []collection.Game) (Stats, error) {
	var stats Stats

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return stats, fmt.Errorf("artwork: check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return stats, fmt.Errorf("artwork: create bucket %s: %w", m.bucket, err)
		}
	}

	for _, game := range games {
		for _, variant := range []struct {
			url string
			key string
		}{
			{game.Image, fmt.Sprintf("covers/%d.jpg", game.ID)},
			{game.Thumbnail, fmt.Sprintf("thumbs/%d.jpg", game.ID)},
		} {
			if variant.url == "" {
				continue
			}
			switch err := m.mirrorOne(ctx, variant.url, variant.key); {
			case err == nil:
				stats.Mirrored++
			case errors.Is(err, errAlreadyMirrored):
				stats.Skipped++
			default:
				stats.Failed++
				m.logger.Warn("mirror failed",
					zap.Int("id", game.ID),
					zap.String("object", variant.key),
					zap.Error(err))
			}
		}
	}

	m.logger.Info("artwork mirror complete",
		zap.Int("mirrored", stats.Mirrored),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed))
	return stats, nil
}

var errAlreadyMirrored = errors.New("already mirrored")

func (m *Mirror) mirrorOne(ctx context.Context, sourceURL, objectName string) error {
	if _, err := m.client.StatObject(ctx, m.bucket, objectName, minio.StatObjectOptions{}); err == nil {
		return errAlreadyMirrored
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: HTTP %d", sourceURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	_, err = m.client.PutObject(ctx, m.bucket, objectName, resp.Body, resp.ContentLength,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	return nil
}
