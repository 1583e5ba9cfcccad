package memory

import (
	"context"
	"errors"
	"sync"

	"Saarthi/internal/repo"
)

// Medium — носитель в памяти процесса. Содержимое теряется при завершении.
type Medium struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int64
}

var _ repo.Medium = (*Medium)(nil)

// New создаёт пустой носитель с квотой quota байт (0 — без ограничения).
func New(quota int64) *Medium {
	return &Medium{data: map[string][]byte{}, quota: quota}
}

func (m *Medium) Quota() int64 { return m.quota }

func (m *Medium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Medium) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.New("empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldSize int64
	if old, ok := m.data[key]; ok {
		oldSize = repo.EntrySize(key, old)
	}
	newSize := repo.EntrySize(key, value)
	if err := repo.CheckQuota(m.quota, m.usageLocked(), oldSize, newSize); err != nil {
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *Medium) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Medium) Usage(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usageLocked(), nil
}

func (m *Medium) usageLocked() int64 {
	var total int64
	for k, v := range m.data {
		total += repo.EntrySize(k, v)
	}
	return total
}
