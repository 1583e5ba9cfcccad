package model

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMIMEType используется, когда тип содержимого определить не удалось.
const DefaultMIMEType = "application/octet-stream"

// Blob — бинарное содержимое загруженного файла вместе с собственным MIME-типом.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Size возвращает размер полезной нагрузки в байтах.
func (b Blob) Size() int64 {
	return int64(len(b.Data))
}

// DataURI кодирует blob в форму data:<mime>;base64,<payload>.
func (b Blob) DataURI() string {
	mt := b.MIMEType
	if mt == "" {
		mt = DefaultMIMEType
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

// ParseDataURI разбирает data URI, записанный DataURI. Поддерживаются только base64-формы.
func ParseDataURI(raw string) (Blob, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return Blob{}, errors.New("data uri: missing data: prefix")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Blob{}, errors.New("data uri: missing payload separator")
	}
	mt, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return Blob{}, errors.Errorf("data uri: unsupported encoding in %q", header)
	}
	if mt == "" {
		mt = DefaultMIMEType
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Blob{}, errors.Wrap(err, "data uri: decode payload")
	}
	return Blob{MIMEType: mt, Data: data}, nil
}
