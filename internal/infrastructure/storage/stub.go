package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	receivableapp "github.com/gestion/backend/internal/application/receivable"
)

var _ receivableapp.AttachmentStorage = (*StubAttachmentStorage)(nil)

// StubAttachmentStorage keeps objects in memory. Used when object
// storage is disabled in configuration and in tests.
type StubAttachmentStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewStubAttachmentStorage creates an in-memory attachment storage
func NewStubAttachmentStorage(baseURL string) *StubAttachmentStorage {
	if baseURL == "" {
		baseURL = "https://storage.invalid"
	}
	return &StubAttachmentStorage{
		objects: make(map[string][]byte),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *StubAttachmentStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return fmt.Errorf("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

func (s *StubAttachmentStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, fmt.Errorf("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	return fmt.Sprintf("%s/%s", s.baseURL, storageKey), time.Now().Add(expiresIn), nil
}

func (s *StubAttachmentStorage) DeleteObject(ctx context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

func (s *StubAttachmentStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}
