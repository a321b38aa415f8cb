package test

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs every OnStart hook in registration order and stops at the first error.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs every OnStop hook in reverse order and joins their errors.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	var errs []error
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		if h := l.Hooks[i]; h.OnStop != nil {
			errs = append(errs, h.OnStop(ctx))
		}
	}
	return errors.Join(errs...)
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}
	calls  atomic.Int32
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	s.calls.Add(1)
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Calls reports how many times Shutdown ran.
func (s *ShutdownerStub) Calls() int {
	return int(s.calls.Load())
}
