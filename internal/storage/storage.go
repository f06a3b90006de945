package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// SnapshotStorage archives published program-library documents and hands
// out temporary download URLs for program export.
type SnapshotStorage interface {
	// PutSnapshot stores a JSON document under the given object key.
	PutSnapshot(ctx context.Context, objectKey string, data []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for an archived snapshot.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an archived snapshot.
	DeleteObject(ctx context.Context, objectKey string) error
}
