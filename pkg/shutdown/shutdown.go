package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Hook releases one resource. It must return once ctx is done.
type Hook func(ctx context.Context) error

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Graceful runs every hook concurrently under one shared deadline and returns
// the first error. Nil hooks are skipped.
func Graceful(timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var g errgroup.Group
	for _, h := range hooks {
		if h == nil {
			continue
		}
		g.Go(func() error { return h(ctx) })
	}
	return g.Wait()
}

// Closer adapts a plain Close method to a Hook.
func Closer(close func() error) Hook {
	return func(context.Context) error { return close() }
}

// Stack collects hooks while a process starts, so a failed start can release
// whatever it already acquired. The zero value is ready to use.
type Stack struct {
	hooks []Hook
}

func (s *Stack) Push(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Release hands the collected hooks to the caller and empties the stack.
func (s *Stack) Release() []Hook {
	hooks := s.hooks
	s.hooks = nil
	return hooks
}

// Unwind runs the remaining hooks when *errp is non-nil and joins their error
// into it. Call it deferred with a named error result.
func (s *Stack) Unwind(errp *error, timeout time.Duration) {
	if *errp == nil || len(s.hooks) == 0 {
		return
	}
	*errp = errors.Join(*errp, Graceful(timeout, s.Release()...))
}
