package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"Saarthi/internal/model"
)

// BlobStore — минимальный контракт доступа к загруженным файлам по ID ресурса.
type BlobStore interface {
	// Put сохраняет файл под id. Может вернуть ErrQuotaExceeded.
	Put(ctx context.Context, id string, blob model.Blob) error

	// Get возвращает файл; ok=false, если файла нет.
	Get(ctx context.Context, id string) (blob model.Blob, ok bool, err error)

	// Remove удаляет файл. Отсутствующий файл не считается ошибкой.
	Remove(ctx context.Context, id string) error

	// IDs возвращает отсортированный список ID, для которых сохранены файлы.
	IDs(ctx context.Context) ([]string, error)
}

type blobStore struct {
	medium Medium
	key    string
}

// NewBlobStore создаёт BlobStore поверх носителя под ключом ResourceFilesKey.
// Все файлы хранятся одной картой id -> data URI.
func NewBlobStore(m Medium) BlobStore {
	return &blobStore{medium: m, key: ResourceFilesKey}
}

func (s *blobStore) load(ctx context.Context) (map[string]string, error) {
	raw, ok, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	files := map[string]string{}
	if !ok || len(raw) == 0 {
		return files, nil
	}
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, &DeserializationError{Key: s.key, Err: err}
	}
	if files == nil {
		files = map[string]string{}
	}
	return files, nil
}

func (s *blobStore) save(ctx context.Context, files map[string]string) error {
	raw, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.medium.Set(ctx, s.key, raw)
}

func (s *blobStore) Put(ctx context.Context, id string, blob model.Blob) error {
	if id == "" {
		return fmt.Errorf("empty blob id")
	}
	files, err := s.load(ctx)
	if err != nil {
		return err
	}
	files[id] = blob.DataURI()
	return s.save(ctx, files)
}

func (s *blobStore) Get(ctx context.Context, id string) (model.Blob, bool, error) {
	if id == "" {
		return model.Blob{}, false, nil
	}
	files, err := s.load(ctx)
	if err != nil {
		return model.Blob{}, false, err
	}
	uri, ok := files[id]
	if !ok {
		return model.Blob{}, false, nil
	}
	b, err := model.ParseDataURI(uri)
	if err != nil {
		return model.Blob{}, false, &DeserializationError{Key: s.key + "/" + id, Err: err}
	}
	return b, true, nil
}

func (s *blobStore) Remove(ctx context.Context, id string) error {
	files, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := files[id]; !ok {
		return nil
	}
	delete(files, id)
	if len(files) == 0 {
		return s.medium.Remove(ctx, s.key)
	}
	return s.save(ctx, files)
}

func (s *blobStore) IDs(ctx context.Context) ([]string, error) {
	files, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
