package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"

	"artist-portfolio/internal/domain/media"
)

// Memory keeps uploads in process. Used in dev mode and tests.
type Memory struct {
	mu      sync.Mutex
	BaseURL string
	objects map[string][]byte
}

var _ media.BlobStore = (*Memory)(nil)

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: baseURL, objects: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, name string, r io.Reader) (media.Stored, error) {
	if err := ctx.Err(); err != nil {
		return media.Stored{}, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return media.Stored{}, err
	}
	id := uuid.NewString() + path.Ext(name)

	m.mu.Lock()
	m.objects[id] = buf.Bytes()
	m.mu.Unlock()

	return media.Stored{URL: m.BaseURL + "/" + id, PublicID: id}, nil
}

func (m *Memory) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[publicID]; !ok {
		return errors.New("blob not found: " + publicID)
	}
	delete(m.objects, publicID)
	return nil
}

func (m *Memory) Get(publicID string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[publicID]
	return b, ok
}
