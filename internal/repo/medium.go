package repo

import (
	"context"
	"errors"
	"fmt"
)

// Ключи хранилища. Метаданные и файлы лежат в разных ключах одного носителя,
// чтобы их можно было просматривать и очищать независимо.
const (
	ResourcesKey     = "resources"
	ResourceFilesKey = "resource-files"
)

// ErrQuotaExceeded возвращается носителем, если запись превысила бы квоту.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Medium — порт доступа к локальному key/value носителю с ограниченной ёмкостью.
// Каждая запись заменяет значение ключа целиком.
type Medium interface {
	// Get возвращает значение ключа; ok=false, если ключа нет.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set заменяет значение ключа. При превышении квоты возвращает ErrQuotaExceeded и ничего не пишет.
	Set(ctx context.Context, key string, value []byte) error

	// Remove удаляет ключ. Отсутствующий ключ не считается ошибкой.
	Remove(ctx context.Context, key string) error

	// Usage возвращает занятый объём: сумма len(key)+len(value) по всем ключам.
	Usage(ctx context.Context) (int64, error)

	// Quota возвращает максимальный объём носителя в байтах.
	Quota() int64
}

// EntrySize — сколько байт квоты занимает пара ключ/значение.
func EntrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}

// CheckQuota проверяет, поместится ли новое значение ключа с учётом уже занятого места
// (usage включает старое значение ключа размером oldSize).
// Запись, которая не увеличивает занятое место, проходит всегда: иначе после уменьшения
// квоты ниже текущего использования нельзя было бы ничего удалить.
func CheckQuota(quota, usage, oldSize, newSize int64) error {
	if quota <= 0 || newSize <= oldSize {
		return nil
	}
	if usage-oldSize+newSize > quota {
		return fmt.Errorf("%w: need %d bytes, quota %d", ErrQuotaExceeded, usage-oldSize+newSize, quota)
	}
	return nil
}

// DeserializationError сообщает, что сохранённое значение ключа не удалось разобрать.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
