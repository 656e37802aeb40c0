package web

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h
}

func receive(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()
	select {
	case frame, ok := <-c.send:
		return frame, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return nil, false
	}
}

func TestHubLateJoinerGetsLatestFrame(t *testing.T) {
	h := startHub(t)
	ctx := context.Background()

	early := &Client{send: make(chan []byte, sendBufSize)}
	h.Register(early)
	h.Broadcast(ctx, []byte("one"))
	if frame, _ := receive(t, early); string(frame) != "one" {
		t.Fatalf("early frame = %q, expected one", frame)
	}

	late := &Client{send: make(chan []byte, sendBufSize)}
	h.Register(late)
	if frame, _ := receive(t, late); string(frame) != "one" {
		t.Errorf("late joiner frame = %q, expected one", frame)
	}

	h.Broadcast(ctx, []byte("two"))
	for _, c := range []*Client{early, late} {
		if frame, _ := receive(t, c); string(frame) != "two" {
			t.Errorf("frame = %q, expected two", frame)
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := startHub(t)
	ctx := context.Background()

	// A full buffer means the next frame cannot be queued.
	slow := &Client{send: make(chan []byte, 1)}
	slow.send <- []byte("stale")
	h.Register(slow)
	h.Broadcast(ctx, []byte("frame"))

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.ClientCount() != 0 {
		t.Fatalf("ClientCount() = %d, expected 0", h.ClientCount())
	}

	if frame, ok := receive(t, slow); !ok || string(frame) != "stale" {
		t.Fatalf("receive() = %q, %v, expected the queued frame", frame, ok)
	}
	if frame, ok := receive(t, slow); ok {
		t.Errorf("receive() = %q, expected the channel to be closed", frame)
	}
}

func TestHubStop(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	c := &Client{send: make(chan []byte, 1)}
	h.Register(c)
	cancel()

	if _, ok := receive(t, c); ok {
		t.Error("client channel should be closed when the hub stops")
	}
	if h.Register(&Client{send: make(chan []byte, 1)}) {
		t.Error("Register() = true after stop, expected false")
	}
	h.Unregister(c)
}
