// Package aws_s3 keeps the plant table as one JSON object per plant in an S3 (or minio) bucket.
package aws_s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	// "http://127.0.0.1:9000"
	HostEndpointURL string
	// "us-east-1"
	Region   string
	Username string
	Password string
	// Bucket holding the plant objects.
	Bucket string
	// Prefix is prepended to every object key, e.g. "plants".
	Prefix string
}

// Connect to minio Server endpoint.
func Connect(config Config) *s3.Client {
	client := s3.NewFromConfig(aws.Config{Region: config.Region}, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.HostEndpointURL)
		o.Credentials = credentials.NewStaticCredentialsProvider(config.Username, config.Password, "")
		// minio serves buckets on the path, not as a subdomain.
		o.UsePathStyle = true
	})
	return client
}
