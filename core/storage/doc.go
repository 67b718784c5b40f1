// Package storage provides an abstraction layer for object storage services.
//
// The membership sheet is exported as CSV into an S3/MinIO bucket; this
// package wraps the MinIO Go client so the sheet source and the integrity
// checks can read it, and so tests can mock it (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Checks that the sheet export is present.
//   - GetObject: Retrieves content as a stream.
//   - PutObject: Uploads a sheet export from the CLI.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, "sheet/membership.csv", minio.GetObjectOptions{})
package storage
