package alert

import (
	"context"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
)

// Task is an alert delivery running in its own goroutine.
type Task struct {
	done chan struct{}
	err  error
}

// Dispatch starts sending a to sink. onError, if not nil, is called with the delivery error
// before Wait returns.
func Dispatch(ctx context.Context, sink Sink, a *model.Alert, onError func(error)) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		if t.err = sink.Send(ctx, a); t.err != nil && onError != nil {
			onError(t.err)
		}
	}()
	return t
}

// Wait blocks until the delivery finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
