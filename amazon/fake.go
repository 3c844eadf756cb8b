package amazon

import (
	"bytes"
	"io"
	"sync"
)

// FakeImageStore is an in-memory ImageStore suitable for tests.
type FakeImageStore struct {
	mu      sync.Mutex
	content map[string][]byte
	// Err, when set, is returned from every operation.
	Err error
}

// NewFakeImageStore returns an empty in-memory image store.
func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{content: make(map[string][]byte)}
}

// Upload implements the ImageStore interface.
func (fake *FakeImageStore) Upload(content io.Reader, key string, contentType string) error {
	if fake.Err != nil {
		return fake.Err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.content[key] = b
	return nil
}

// GetStream implements the ImageStore interface.
func (fake *FakeImageStore) GetStream(key string) (io.ReadCloser, error) {
	if fake.Err != nil {
		return nil, fake.Err
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	b, ok := fake.content[key]
	if !ok {
		return nil, ErrContentNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Delete implements the ImageStore interface.
func (fake *FakeImageStore) Delete(key string) error {
	if fake.Err != nil {
		return fake.Err
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	delete(fake.content, key)
	return nil
}
