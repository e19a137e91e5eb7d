// Package s3 stores uploaded documents in an S3 bucket.
package s3

import (
	"context"
	"fmt"
	"io"

	"relief-coordination-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// putter is the slice of the S3 client the uploader needs.
type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	client           putter
	bucket           string
	region           string
	cloudFrontDomain string
}

func NewUploader(ctx context.Context, cfg config.S3Config) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newUploader(s3.NewFromConfig(sdkConfig), cfg), nil
}

func newUploader(client putter, cfg config.S3Config) *Uploader {
	return &Uploader{
		client:           client,
		bucket:           cfg.Bucket,
		region:           cfg.Region,
		cloudFrontDomain: cfg.CloudFrontDomain,
	}
}

// UploadFile uploads a file to S3 and returns its public URL.
func (u *Uploader) UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return u.URL(objectKey), nil
}

// URL prefers the CloudFront distribution and falls back to the bucket endpoint.
func (u *Uploader) URL(objectKey string) string {
	if u.cloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", u.cloudFrontDomain, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, objectKey)
}
