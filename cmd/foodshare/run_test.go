package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/fx"
)

func TestRunStopsOnContextCancel(t *testing.T) {
	started := make(chan struct{})
	stopped := make(chan struct{})
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					close(started)
					return nil
				},
				OnStop: func(context.Context) error {
					close(stopped)
					return nil
				},
			})
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stderr bytes.Buffer
	codes := make(chan int, 1)
	go func() { codes <- run(ctx, app, &stderr) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("app did not start")
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case code := <-codes:
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	select {
	case <-stopped:
	default:
		t.Fatal("expected stop hooks to run")
	}
}

func TestRunReportsStartFailure(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStart: func(context.Context) error {
				return errors.New("port in use")
			}})
		}),
	)

	var stderr bytes.Buffer
	if code := run(context.Background(), app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "port in use") {
		t.Fatalf("expected start error on stderr, got %q", stderr.String())
	}
}
