package viewer

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	MsgNoFile       = "No file to preview"
	MsgNoPreview    = "No preview available"
	MsgFailedToLoad = "Failed to load document"
)

// Preview — отображаемая форма документа. В зависимости от Kind заполнено ровно одно из полей:
// DataURI (изображение), Text (текст или текущая страница pdf) или Message (заглушка либо ошибка).
type Preview struct {
	Kind     Kind
	FileName string
	MIMEType string
	DataURI  string
	Text     string
	Pager    *Pager
	Failed   bool
	Message  string

	pdf *pdf.Reader
}

// Render строит предпросмотр doc и не возвращает ошибок: для отсутствующего файла и
// неподдерживаемого формата выводится заглушка, для битого pdf — предпросмотр с Failed.
func Render(doc Document) *Preview {
	fileName := doc.Resource.FileName
	if fileName == "" || doc.Blob == nil {
		return &Preview{Kind: KindUnknown, FileName: fileName, Message: MsgNoFile}
	}
	p := &Preview{
		Kind:     Classify(fileName),
		FileName: fileName,
		MIMEType: doc.Blob.MIMEType,
	}
	switch p.Kind {
	case KindImage:
		p.DataURI = doc.Blob.DataURI()
	case KindPDF:
		p.openPDF(doc.Blob.Data)
	case KindText:
		p.Text = DecodeText(doc.Blob.Data)
	case KindUnknown:
		p.Message = MsgNoPreview
	}
	return p
}

// Next показывает следующую страницу pdf. Для остальных видов ничего не делает.
func (p *Preview) Next() { p.Go(p.currentPage() + 1) }

// Prev показывает предыдущую страницу pdf. Для остальных видов ничего не делает.
func (p *Preview) Prev() { p.Go(p.currentPage() - 1) }

// Go показывает страницу pdf с номером n в пределах документа.
func (p *Preview) Go(n int) {
	if p.Pager == nil || p.pdf == nil {
		return
	}
	p.renderPage(p.Pager.Go(n))
}

func (p *Preview) currentPage() int {
	if p.Pager == nil {
		return 1
	}
	return p.Pager.Current()
}

func (p *Preview) openPDF(data []byte) {
	r, count, err := parsePDF(data)
	if err != nil || count < 1 {
		p.Failed = true
		p.Message = MsgFailedToLoad
		return
	}
	p.pdf = r
	p.Pager = NewPager(count)
	p.renderPage(1)
}

func (p *Preview) renderPage(n int) {
	text, err := pageText(p.pdf, n)
	if err != nil {
		p.Text = ""
		p.Message = fmt.Sprintf("Failed to render page %d", n)
		return
	}
	p.Text = text
	p.Message = ""
}

// parsePDF читает число страниц. На некоторых битых файлах парсер паникует,
// такая паника возвращается как ошибка.
func parsePDF(data []byte) (r *pdf.Reader, count int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, count, err = nil, 0, fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("parse pdf: %w", err)
	}
	return r, r.NumPage(), nil
}

func pageText(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", n, rec)
		}
	}()
	page := r.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: not found", n)
	}
	return page.GetPlainText(nil)
}

// DecodeText превращает текстовое содержимое в строку с учётом BOM UTF-8 и UTF-16.
// Пробелы и переводы строк сохраняются как есть.
func DecodeText(data []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
