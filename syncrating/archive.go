package syncrating

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"rating-manager/core/storage"
	"rating-manager/rating/merge"
)

// Archive uploads the merged rating files to the archive bucket under
// the rating folder name, creating the bucket on first use.
func Archive(ctx context.Context, client storage.Client, log *zap.Logger,
	bucket, ratingFolder, staging string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("unable to check archive bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("unable to create archive bucket: %w", err)
		}
	}

	combine := filepath.Join(staging, "Combine")
	for _, extension := range merge.Extensions {
		name := ratingFolder + "." + extension
		local := filepath.Join(combine, name)

		file, err := os.Open(local)
		if err != nil {
			return fmt.Errorf("merged file missing, run merge first: %w", err)
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return err
		}

		object := path.Join(ratingFolder, name)
		log.Info("archiving merged file",
			zap.String("bucket", bucket), zap.String("object", object))
		_, err = client.PutObject(ctx, bucket, object, file, info.Size(),
			minio.PutObjectOptions{ContentType: "text/plain"})
		file.Close()
		if err != nil {
			return fmt.Errorf("unable to archive %s: %w", name, err)
		}
	}
	return nil
}
