package gcsuploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

// Backup mirrors archived statement files to a GCS bucket. It implements
// pipeline.ArchiveBackup. Application Default Credentials are assumed
// (gcloud auth application-default login).
type Backup struct {
	bucket string
}

// NewBackup creates a Backup targeting the given bucket.
func NewBackup(bucket string) *Backup {
	return &Backup{bucket: bucket}
}

// BackupFile uploads the local file under archive/<filename> in the bucket.
// A name collision overwrites the remote copy, matching the local archive
// semantics.
func (b *Backup) BackupFile(ctx context.Context, filePath string) error {
	objectName := path.Join("archive", filepath.Base(filePath))

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(b.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	return nil
}
