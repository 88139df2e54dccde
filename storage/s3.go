// Package storage uploads rendered deck images to an S3 compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"deckbuilder/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ImageStore stores a rendered image and returns the URL it is reachable at
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// S3Store uploads objects with public-read ACL
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3StoreFromConfig returns nil when no bucket is configured
func NewS3StoreFromConfig() *S3Store {
	if config.S3Bucket == "" {
		return nil
	}

	cfg := aws.Config{
		Region: config.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(config.S3AccessKey, config.S3SecretKey, ""),
		),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(config.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: config.S3Bucket, publicURL: PublicBaseURL()}
}

// PublicBaseURL is where uploaded objects are served from
func PublicBaseURL() string {
	if config.S3PublicUrl != "" {
		return strings.TrimRight(config.S3PublicUrl, "/")
	}
	if config.S3Endpoint != "" {
		return strings.TrimRight(config.S3Endpoint, "/") + "/" + config.S3Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.S3Bucket, config.S3Region)
}

// Upload puts body under key and returns its public URL
func (s *S3Store) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3 bucket: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
