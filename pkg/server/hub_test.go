package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func TestBroadcastDropsStalledClient(t *testing.T) {
	defer func(d time.Duration) { writeWait = d }(writeWait)
	writeWait = 50 * time.Millisecond

	h := newHub(log.New(io.Discard))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.add(&conn{c: ws})
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for len(h.snapshot()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The client never reads, so the socket buffers eventually fill.
	payload := strings.Repeat("x", 1<<20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 256 && len(h.snapshot()) > 0; i++ {
			h.broadcast(context.Background(), message{Type: "reload", Revision: payload})
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("broadcast blocked on a client that does not read")
	}
	if n := len(h.snapshot()); n != 0 {
		t.Errorf("clients after stalled writes = %d, want 0", n)
	}
}
