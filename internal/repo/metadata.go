package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"Saarthi/internal/model"
)

// MetadataStore хранит упорядоченную коллекцию Resource одним сериализованным документом.
type MetadataStore interface {
	// Load возвращает коллекцию в сохранённом порядке (новые первыми).
	// Пустое или отсутствующее хранилище даёт пустой срез.
	Load(ctx context.Context) ([]model.Resource, error)

	// SaveAll заменяет сохранённую коллекцию целиком.
	SaveAll(ctx context.Context, resources []model.Resource) error
}

type metadataStore struct {
	medium Medium
	key    string
}

// NewMetadataStore создаёт MetadataStore поверх носителя под ключом ResourcesKey.
func NewMetadataStore(m Medium) MetadataStore {
	return &metadataStore{medium: m, key: ResourcesKey}
}

func (s *metadataStore) Load(ctx context.Context) ([]model.Resource, error) {
	raw, ok, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok || len(raw) == 0 {
		return []model.Resource{}, nil
	}
	var res []model.Resource
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &DeserializationError{Key: s.key, Err: err}
	}
	if res == nil {
		res = []model.Resource{}
	}
	return res, nil
}

func (s *metadataStore) SaveAll(ctx context.Context, resources []model.Resource) error {
	if resources == nil {
		resources = []model.Resource{}
	}
	raw, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.medium.Set(ctx, s.key, raw)
}
