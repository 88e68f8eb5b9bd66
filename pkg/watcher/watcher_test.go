package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parivaar/kutir-report/pkg/logger"
)

func newTestWatcher(t *testing.T, debounce time.Duration) Watcher {
	t.Helper()

	w, err := New(Config{Debounce: debounce}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = w.Close() // nolint:errcheck
	})
	return w
}

func waitForEvent(t *testing.T, w Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()

	select {
	case event := <-w.Events():
		return event, true
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
		return Event{}, false
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, 0)
	if w == nil {
		t.Fatal("New() returned nil")
	}
}

func TestStart_NoPaths(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, 10*time.Millisecond)

	err := w.Start(context.Background(), []string{"/nonexistent/a", "/nonexistent/b"})
	if !errors.Is(err, ErrNoWatchPaths) {
		t.Errorf("Start() error = %v, want ErrNoWatchPaths", err)
	}
}

func TestStart_Twice(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, 10*time.Millisecond)
	dir := t.TempDir()

	if err := w.Start(context.Background(), []string{dir}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(context.Background(), []string{dir}); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatch_CSVWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := newTestWatcher(t, 20*time.Millisecond)

	if err := w.Start(context.Background(), []string{dir}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	path := filepath.Join(dir, "attendance.csv")
	if err := os.WriteFile(path, []byte("Date,Attendance of Students\n"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	event, ok := waitForEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatal("no event received for CSV write")
	}
	if event.Path != path {
		t.Errorf("event.Path = %q, want %q", event.Path, path)
	}
	if event.Op != OpCreate && event.Op != OpWrite {
		t.Errorf("event.Op = %v, want create or write", event.Op)
	}
	if event.Timestamp.IsZero() {
		t.Error("event.Timestamp is zero")
	}
}

func TestWatch_IgnoresNonCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := newTestWatcher(t, 20*time.Millisecond)

	if err := w.Start(context.Background(), []string{dir}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if event, ok := waitForEvent(t, w, 300*time.Millisecond); ok {
		t.Errorf("received event %+v for non-CSV file", event)
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := newTestWatcher(t, 100*time.Millisecond)

	if err := w.Start(context.Background(), []string{dir}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A burst of writes within the debounce window collapses into one
	// delivered event.
	path := filepath.Join(dir, "attendance.csv")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("Date,Attendance of Students\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, ok := waitForEvent(t, w, 2*time.Second); !ok {
		t.Fatal("no event received for burst")
	}

	if event, ok := waitForEvent(t, w, 300*time.Millisecond); ok {
		t.Errorf("burst delivered a second event: %+v", event)
	}
}

func TestStop(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, 10*time.Millisecond)

	if err := w.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Stop() before Start error = %v, want ErrNotStarted", err)
	}

	if err := w.Start(context.Background(), []string{t.TempDir()}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Debounce: 10 * time.Millisecond}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// Closing twice is a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := w.Start(context.Background(), []string{t.TempDir()}); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start() after Close error = %v, want ErrWatcherClosed", err)
	}
}

func TestOpString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
