package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"Saarthi/internal/viewer"
)

// ErrClosed возвращает Ask после закрытия сессии.
var ErrClosed = errors.New("assistant session closed")

// Role — автор сообщения в чате.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message — одна запись чата.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session — чат, привязанный к одному открытому документу. Живёт столько же, сколько
// просмотр: Close отбрасывает все ожидающие ответы.
type Session struct {
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	doc      viewer.Document
	delays   Delays
	messages []Message
	seq      int
	summary  *Task[string]
}

// NewSession открывает сессию для doc и запускает подготовку краткого содержания.
func NewSession(parent context.Context, doc viewer.Document, delays Delays) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{ctx: ctx, cancel: cancel, doc: doc, delays: delays}
	s.summary = Start(ctx, delays.Summary, func() string { return Summarize(doc) })
	return s
}

// Summary ждёт краткое содержание.
func (s *Session) Summary(ctx context.Context) (string, error) {
	return s.summary.Wait(ctx)
}

// Ask записывает вопрос и планирует ответ. Возвращённая задача завершается ответом,
// когда тот уже добавлен в переписку.
func (s *Session) Ask(question string) (*Task[Message], error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.New("question is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return nil, ErrClosed
	}
	s.messages = append(s.messages, s.nextMessage(RoleUser, question))
	return Start(s.ctx, s.delays.Answer, func() Message {
		s.mu.Lock()
		defer s.mu.Unlock()
		reply := s.nextMessage(RoleAssistant, Answer(s.doc, question))
		if s.ctx.Err() == nil {
			s.messages = append(s.messages, reply)
		}
		return reply
	}), nil
}

// Messages возвращает копию переписки на текущий момент.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Close завершает сессию. Ожидающие краткое содержание и ответы отбрасываются.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) nextMessage(role Role, content string) Message {
	s.seq++
	return Message{ID: fmt.Sprintf("msg-%d", s.seq), Role: role, Content: content}
}
