package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const snapshotKey = "snapshot.json"

type s3Backend struct {
	s3Client *s3.Client
	bucket   string
}

// NewBackend creates an S3 snapshot backend. The snapshot lives under a
// single fixed key in the bucket.
func NewBackend(bucketName string) *s3Backend {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	return &s3Backend{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucketName,
	}
}

func (b *s3Backend) Load(ctx context.Context) ([]byte, error) {
	resp, err := b.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(snapshotKey),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot object: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot data: %v", err)
	}
	return data, nil
}

func (b *s3Backend) Save(ctx context.Context, data []byte) error {
	_, err := b.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(snapshotKey),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %v", err)
	}
	return nil
}
