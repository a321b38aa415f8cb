package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/config"
	testhelpers "github.com/polkiloo/foodshare/internal/test"
	"github.com/polkiloo/foodshare/internal/usecase"
	"github.com/polkiloo/foodshare/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRefresher(interval time.Duration) *worker.DashboardRefresher {
	reports := usecase.NewReportUseCase(testhelpers.SnapshotStub{Users: testhelpers.NewUserRepositoryStub(), Activity: &testhelpers.ActivityRepositoryStub{}}, time.Monday)
	return worker.NewDashboardRefresher(reports, interval, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewDashboardRefresherUsesConfig(t *testing.T) {
	reports := usecase.NewReportUseCase(testhelpers.SnapshotStub{Users: testhelpers.NewUserRepositoryStub(), Activity: &testhelpers.ActivityRepositoryStub{}}, time.Monday)
	r := newDashboardRefresher(workerParams{
		Reports: reports,
		Config:  &config.Config{DashboardRefresh: 0},
		Logger:  discardLogger(),
	})
	if r == nil || r.Enabled() {
		t.Fatal("expected disabled refresher for zero interval")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Worker:     newTestRefresher(10 * time.Millisecond),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := recorder.Stop(context.Background()); err != nil {
			t.Errorf("on stop failed: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
	if shutdowner.Calls() != 0 {
		t.Fatalf("expected no shutdown for a clean stop, got %d", shutdowner.Calls())
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Worker:     newTestRefresher(0),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderRunsHooksInOrder(t *testing.T) {
	var calls []string
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { calls = append(calls, "start a"); return nil },
		OnStop:  func(context.Context) error { calls = append(calls, "stop a"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { calls = append(calls, "start b"); return nil },
		OnStop:  func(context.Context) error { calls = append(calls, "stop b"); return nil },
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start a", "start b", "stop b", "stop a"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, calls)
		}
	}
}
