package aws_s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/herbverse/plantdb"
)

const objectSuffix = ".json"

// objectAPI is the subset of *s3.Client the plant store calls.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// PlantStore is the S3 bucket implementation of plantdb.PlantStore.
type PlantStore struct {
	client objectAPI
	bucket string
	prefix string
	region string
}

// NewPlantStore returns a PlantStore keeping objects in config.Bucket under config.Prefix.
func NewPlantStore(client *s3.Client, config Config) (*PlantStore, error) {
	if client == nil {
		return nil, fmt.Errorf("s3Client parameter can't be nil")
	}
	return newPlantStore(client, config)
}

func newPlantStore(client objectAPI, config Config) (*PlantStore, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket name can't be empty")
	}
	return &PlantStore{
		client: client,
		bucket: config.Bucket,
		prefix: strings.Trim(config.Prefix, "/"),
		region: config.Region,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (ps *PlantStore) EnsureBucket(ctx context.Context) error {
	_, err := ps.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(ps.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("couldn't check bucket %s, details: %w", ps.bucket, err)
	}
	input := &s3.CreateBucketInput{Bucket: aws.String(ps.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if ps.region != "" && ps.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(ps.region),
		}
	}
	if _, err := ps.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("couldn't create bucket %s in Region %s, details: %w", ps.bucket, ps.region, err)
	}
	log.Info("created plant bucket", "bucket", ps.bucket, "region", ps.region)
	return nil
}

// ObjectKey returns the key of the object holding the plant with id.
func (ps *PlantStore) ObjectKey(id plantdb.UUID) string {
	return path.Join(ps.prefix, id.String()+objectSuffix)
}

func (ps *PlantStore) listPrefix() string {
	if ps.prefix == "" {
		return ""
	}
	return ps.prefix + "/"
}

// LoadSnapshot lists every plant object directly under the prefix and fetches each one.
func (ps *PlantStore) LoadSnapshot(ctx context.Context) ([]*plantdb.PlantRecord, error) {
	paginator := s3.NewListObjectsV2Paginator(ps.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(ps.bucket),
		Prefix:    aws.String(ps.listPrefix()),
		Delimiter: aws.String("/"),
	})
	var r []*plantdb.PlantRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list of bucket %s failed: %w", ps.bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			// Only objects directly under the prefix are plants; exports live deeper.
			if !strings.HasSuffix(key, objectSuffix) || strings.Contains(strings.TrimPrefix(key, ps.listPrefix()), "/") {
				continue
			}
			rec, err := ps.fetch(ctx, key)
			if err != nil {
				return nil, err
			}
			r = append(r, rec)
		}
	}
	log.Debug("s3 plant snapshot loaded", "bucket", ps.bucket, "objects", len(r))
	return r, nil
}

func (ps *PlantStore) fetch(ctx context.Context, key string) (*plantdb.PlantRecord, error) {
	result, err := ps.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ps.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get of %s failed: %w", key, err)
	}
	defer result.Body.Close()
	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read of %s failed: %w", key, err)
	}
	var rec plantdb.PlantRecord
	if err := plantdb.DefaultMarshaler.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("s3 object %s is not a plant: %w", key, err)
	}
	return &rec, nil
}

func (ps *PlantStore) exists(ctx context.Context, key string) (bool, error) {
	_, err := ps.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(ps.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("s3 head of %s failed: %w", key, err)
}

// Insert uploads rec unless an object for its id already exists.
func (ps *PlantStore) Insert(ctx context.Context, rec *plantdb.PlantRecord) error {
	key := ps.ObjectKey(rec.ID)
	found, err := ps.exists(ctx, key)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("s3 insert of %s failed: %w", key, plantdb.ErrRecordExists)
	}
	ba, err := plantdb.DefaultMarshaler.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := ps.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ps.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(ba),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("s3 put of %s failed: %w", key, err)
	}
	return nil
}

// Delete removes the object of the plant with id.
func (ps *PlantStore) Delete(ctx context.Context, id plantdb.UUID) error {
	key := ps.ObjectKey(id)
	found, err := ps.exists(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("s3 delete of %s failed: %w", key, plantdb.ErrRecordNotFound)
	}
	if _, err := ps.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(ps.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete of %s failed: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
