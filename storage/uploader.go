package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader is the subset of the S3 client the archive needs. *s3.Client satisfies it.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectUploader = (*s3.Client)(nil)

type UploadResult struct {
	Key  string
	ETag string
}
