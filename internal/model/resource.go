package model

import (
	"fmt"
	"strings"
	"time"
)

// ResourceType — вид сохранённого ресурса. Задаётся при создании и не меняется.
type ResourceType string

const (
	TypeLink     ResourceType = "link"
	TypeCode     ResourceType = "code"
	TypeDocument ResourceType = "document"
)

// ResourceTypes перечисляет все типы в порядке вкладок интерфейса.
var ResourceTypes = []ResourceType{TypeLink, TypeCode, TypeDocument}

// ParseResourceType разбирает строковое представление типа.
func ParseResourceType(raw string) (ResourceType, error) {
	value := ResourceType(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case TypeLink, TypeCode, TypeDocument:
		return value, nil
	case "":
		return "", fmt.Errorf("resource type is required")
	default:
		return "", fmt.Errorf("invalid resource type: %s (expected: link|code|document)", value)
	}
}

// Resource — одна запись хранилища (ссылка, фрагмент кода или документ).
// FileName и FileSize заполнены тогда и только тогда, когда в BlobStore есть файл с тем же ID.
type Resource struct {
	ID          string       `json:"id"`
	Type        ResourceType `json:"type"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	FileName    string       `json:"fileName,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty"`
}

// HasFile сообщает, ссылается ли запись на загруженный файл.
func (r Resource) HasFile() bool {
	return r.FileName != ""
}

// UploadPlaceholder — содержимое документа, для которого заметки не заданы, но загружен файл.
func UploadPlaceholder(fileName string) string {
	return fmt.Sprintf("[Uploaded: %s]", fileName)
}
