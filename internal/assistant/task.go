package assistant

import (
	"context"
	"time"
)

// Task — отложенный результат, привязанный к контексту. Если контекст отменён
// до истечения задержки, результат отбрасывается и fn не вызывается.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Start вызывает fn через delay, если ctx не завершится раньше.
func Start[T any](ctx context.Context, delay time.Duration, fn func() T) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			t.err = ctx.Err()
		case <-timer.C:
			if err := ctx.Err(); err != nil {
				t.err = err
				return
			}
			t.val = fn()
		}
	}()
	return t
}

// Done закрывается, когда у задачи есть значение или она отброшена.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait блокируется до завершения задачи или ctx.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
