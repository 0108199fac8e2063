package aws_s3

import (
	"bytes"
	"context"
	"fmt"
	log "log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/herbverse/plantdb"
)

const largeObjectMinSize = 10 * 1024 * 1024

// SnapshotUploader is satisfied by *manager.Uploader.
type SnapshotUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewSnapshotUploader returns a multipart uploader for catalog dumps.
func NewSnapshotUploader(client *s3.Client) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = largeObjectMinSize
	})
}

// ExportSnapshot uploads records as one JSON array to bucket/key.
func ExportSnapshot(ctx context.Context, uploader SnapshotUploader, bucket, key string, records []*plantdb.PlantRecord) error {
	if records == nil {
		records = []*plantdb.PlantRecord{}
	}
	ba, err := plantdb.DefaultMarshaler.Marshal(records)
	if err != nil {
		return err
	}
	out, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(ba),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 export of %s/%s failed: %w", bucket, key, err)
	}
	log.Info("exported plant snapshot", "bucket", bucket, "key", key, "plants", len(records), "location", out.Location)
	return nil
}
