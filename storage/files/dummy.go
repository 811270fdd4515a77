package filestore

import (
	"context"
	"io"
	"io/ioutil"
	"sync"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// DummyStorage keeps uploads in memory; used in DEV|TEST mode.
type DummyStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ core.FileStorage = (*DummyStorage)(nil)

func NewDummyStorage() *DummyStorage {
	return &DummyStorage{files: make(map[string][]byte)}
}

func (s *DummyStorage) UploadFile(_ context.Context, key string, r io.Reader) (string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.files[key] = data
	s.mu.Unlock()
	return "dummy://" + key, nil
}

func (s *DummyStorage) DeleteFile(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.files, key)
	s.mu.Unlock()
	return nil
}

// File returns the stored content for key, if any.
func (s *DummyStorage) File(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[key]
	return data, ok
}
