package storage

import (
	"context"
	"io"
	"sync"
)

// Memory keeps objects in a map. It backs local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *Memory) Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	m.types[bucket+"/"+key] = opts.ContentType
	return ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

func (m *Memory) Delete(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+key)
	delete(m.types, bucket+"/"+key)
	return nil
}

// Object returns the stored bytes and content type.
func (m *Memory) Object(bucket, key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[bucket+"/"+key]
	return data, m.types[bucket+"/"+key], ok
}

func (m *Memory) Close() error { return nil }
