package receivable

import (
	"context"
	"time"
)

// AttachmentStorage abstracts the object store that keeps dispute
// attachments. The S3 adapter implements it; tests use an in-memory stub.
type AttachmentStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}
