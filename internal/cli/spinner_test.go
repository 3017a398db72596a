package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Loading graph...")
	time.Sleep(200 * time.Millisecond)
	s.stop()

	got := buf.String()
	if !strings.Contains(got, "Loading graph...") {
		t.Errorf("spinner output %q missing message", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Errorf("spinner output %q does not end by clearing the line", got)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &bytes.Buffer{}, "Testing")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after context cancellation")
	}
	s.stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &bytes.Buffer{}, "Testing")
	s.stop()
	s.stop()
}
