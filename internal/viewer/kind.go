// Package viewer восстанавливает сохранённый ресурс и его файл в отображаемый предпросмотр.
package viewer

import (
	"strings"

	"Saarthi/internal/model"
)

// Kind — вариант предпросмотра, выбранный для файла.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindPDF
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

var extensionKinds = map[string]Kind{
	"jpg":  KindImage,
	"jpeg": KindImage,
	"png":  KindImage,
	"gif":  KindImage,
	"webp": KindImage,
	"pdf":  KindPDF,
	"txt":  KindText,
	"md":   KindText,
	"js":   KindText,
	"ts":   KindText,
	"tsx":  KindText,
	"py":   KindText,
	"java": KindText,
	"code": KindText,
}

// Extension возвращает суффикс после последней точки в нижнем регистре.
// Имя без точки считается собственным расширением: "README" даёт "readme".
func Extension(fileName string) string {
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
		fileName = fileName[i+1:]
	}
	return strings.ToLower(fileName)
}

// Classify определяет вид предпросмотра по имени файла.
func Classify(fileName string) Kind {
	if k, ok := extensionKinds[Extension(fileName)]; ok {
		return k
	}
	return KindUnknown
}

// Document — ресурс вместе с найденным файлом. Blob равен nil, если файла нет.
type Document struct {
	Resource model.Resource
	Blob     *model.Blob
}
