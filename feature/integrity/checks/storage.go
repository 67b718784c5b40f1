package checks

import (
	"context"
	"fmt"
	"time"

	"bcds-membership/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the membership sheet in the bucket.
type StorageReport struct {
	Bucket       string    `json:"bucket"`
	Object       string    `json:"object"`
	Present      bool      `json:"present"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// CheckStorage verifies that the bucket exists and holds the sheet export.
// A missing bucket is an error, a missing object is reported.
func CheckStorage(ctx context.Context, client storage.Client, bucket, object string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StorageReport{Bucket: bucket, Object: object}
	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if storage.IsNotFound(err) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}

	report.Present = true
	report.Size = info.Size
	report.LastModified = info.LastModified
	return report, nil
}
