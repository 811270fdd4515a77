package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// B2Storage stores uploaded documents in a Backblaze B2 bucket.
type B2Storage struct {
	client  *b2.Client
	bucket  *b2.Bucket
	baseURL string
}

var _ core.FileStorage = (*B2Storage)(nil)

func NewB2Storage(ctx context.Context, conf core.StorageConfig) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, conf.B2KeyID, conf.B2AppKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating b2 client")
	}

	bucket, err := client.Bucket(ctx, conf.B2Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "getting b2 bucket")
	}

	baseURL := conf.B2BaseURL
	if baseURL == "" {
		baseURL = bucket.BaseURL()
	}
	return &B2Storage{client: client, bucket: bucket, baseURL: baseURL}, nil
}

func (s *B2Storage) UploadFile(ctx context.Context, key string, r io.Reader) (string, error) {
	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "writing object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "closing object writer")
	}

	return fmt.Sprintf("%s/file/%s/%s", s.baseURL, s.bucket.Name(), key), nil
}

func (s *B2Storage) DeleteFile(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return errors.Wrap(err, "deleting object")
	}
	return nil
}
