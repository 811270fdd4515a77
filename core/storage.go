package core

import (
	"context"
	"io"
)

// FileStorage is any service that can store uploaded documents and hand back
// a publicly resolvable URL.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, r io.Reader) (url string, err error)
	DeleteFile(ctx context.Context, key string) error
}
