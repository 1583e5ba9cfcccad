package service

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"Saarthi/internal/repo"
)

// ErrNotFound — запрошенный ресурс отсутствует в хранилище.
var ErrNotFound = errors.New("resource not found")

// ErrQuotaExceeded — носитель не может принять запись: закончилась квота.
var ErrQuotaExceeded = repo.ErrQuotaExceeded

// DeserializationError — сохранённое состояние повреждено.
type DeserializationError = repo.DeserializationError

// ValidationError — неверный ввод; операция не имела побочных эффектов.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FileTooLargeError — загружаемый файл больше допустимого размера.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is too large: %s (limit %s)",
		humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
