package async_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/cutover-io/cutover/pkg/utils/async"
)

// recordHandler collects error-level records and signals each arrival, so
// tests can wait for the dispatched goroutine's logging instead of sleeping.
type recordHandler struct {
	mu      sync.Mutex
	entries []string
	arrived chan struct{}
}

func newRecordHandler() *recordHandler {
	return &recordHandler{arrived: make(chan struct{}, 4)}
}

func (h *recordHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *recordHandler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Value.String())
		return true
	})

	h.mu.Lock()
	h.entries = append(h.entries, sb.String())
	h.mu.Unlock()

	select {
	case h.arrived <- struct{}{}:
	default:
	}
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(name string) slog.Handler       { return h }

func (h *recordHandler) wait(t *testing.T) string {
	t.Helper()
	select {
	case <-h.arrived:
	case <-time.After(time.Second):
		t.Fatal("no log record arrived in time")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return strings.Join(h.entries, "\n")
}

func TestDispatchRunsHandler(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestDispatchLogsHandlerError(t *testing.T) {
	handler := newRecordHandler()
	ctx := ctxlog.With(context.Background(), slog.New(handler))

	async.Dispatch(ctx, func(ctx context.Context) error {
		return errors.New("notification rejected")
	})

	out := handler.wait(t)
	gt.String(t, out).Contains("error in async handler")
	gt.String(t, out).Contains("notification rejected")
}

func TestDispatchRecoversPanic(t *testing.T) {
	handler := newRecordHandler()
	ctx := ctxlog.With(context.Background(), slog.New(handler))

	async.Dispatch(ctx, func(ctx context.Context) error {
		panic("notifier blew up")
	})

	out := handler.wait(t)
	gt.String(t, out).Contains("panic in async handler")
	gt.String(t, out).Contains("notifier blew up")
	// the recovered stack names this test file
	gt.String(t, out).Contains("dispatch_test.go")
}

func TestDispatchPreservesLogger(t *testing.T) {
	handler := newRecordHandler()
	logger := slog.New(handler)
	ctx := ctxlog.With(context.Background(), logger)

	got := make(chan *slog.Logger, 1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		got <- ctxlog.From(ctx)
		return nil
	})

	select {
	case inner := <-got:
		gt.NotNil(t, inner)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestDispatchOutlivesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	outcome := make(chan error, 1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		cancel()
		outcome <- ctx.Err()
		return nil
	})

	select {
	case err := <-outcome:
		// the handler runs on a fresh background context
		gt.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}
