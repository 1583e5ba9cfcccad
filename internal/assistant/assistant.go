// Package assistant — имитация краткого содержания документа и ответов на вопросы.
// Ответы заготовлены заранее и приходят после искусственной задержки.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"Saarthi/internal/viewer"
)

// Delays задаёт искусственные задержки имитируемых вызовов.
type Delays struct {
	Summary time.Duration
	Answer  time.Duration
}

// DefaultDelays совпадают с задержками веб-клиента.
var DefaultDelays = Delays{Summary: time.Second, Answer: 800 * time.Millisecond}

// Summarize возвращает краткое содержание doc.
func Summarize(doc viewer.Document) string {
	res := doc.Resource
	desc := res.Description
	if desc == "" {
		desc = "This document contains important information."
	}
	contentType := "Text"
	if res.FileName != "" {
		contentType = strings.ToUpper(viewer.Extension(res.FileName))
	}
	var b strings.Builder
	b.WriteString("📋 **Document Summary**\n\n")
	b.WriteString(desc)
	b.WriteString("\n\n**Key Points:**\n")
	fmt.Fprintf(&b, "- Content Type: %s\n", contentType)
	fmt.Fprintf(&b, "- Created: %s\n", res.CreatedAt.Local().Format("2006-01-02"))
	b.WriteString("- Status: Ready for Q&A\n\n")
	b.WriteString("Ask me anything about this document!")
	return b.String()
}

// Answer возвращает ответ на вопрос question о doc.
func Answer(_ viewer.Document, question string) string {
	return fmt.Sprintf("I understand your question about %q. Based on the document provided, "+
		"I can help you find relevant information. To provide accurate answers, "+
		"please ensure the document content is properly indexed.", question)
}
