package beacon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestTrackDeliversEvents(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b, err := New(Options{Endpoint: srv.URL, FlushInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	require.True(t, b.Track(Event{SessionID: "s1", UserID: "u1", EventType: "page_view", PagePath: "/games"}))
	require.True(t, b.Track(Event{SessionID: "s1", UserID: "u1", EventType: "click", PagePath: "/games"}))
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	require.Equal(t, int64(2), b.Sent())
	require.Equal(t, int64(0), b.Dropped())
}

func TestRetryOnceThenDrop(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b, err := New(Options{Endpoint: srv.URL, FlushInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	require.True(t, b.Track(Event{SessionID: "s1", UserID: "u1", EventType: "scroll_50", PagePath: "/"}))
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, attempts, "one retry, then the event is dropped")
	require.Equal(t, int64(1), b.Dropped())
	require.Equal(t, int64(0), b.Sent())
}

func TestFullQueueDropsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b, err := New(Options{Endpoint: srv.URL, QueueSize: 1, FlushInterval: time.Hour})
	require.NoError(t, err)

	// First event may be in-flight with the flusher; fill the queue, then
	// overflow it.
	b.Track(Event{EventType: "page_view"})
	for i := 0; i < 10; i++ {
		b.Track(Event{EventType: "click"})
	}
	require.Greater(t, b.Dropped(), int64(0), "overflow must drop, not block")

	close(block)
	b.Close()
}

func TestCloseCountsEventsStrandedInQueue(t *testing.T) {
	// An enqueue can slip in between the flusher's final drain and its exit.
	// No flusher runs here, so the queued event is exactly that straggler.
	b := &Beacon{
		queue:   make(chan Event, 2),
		closing: make(chan struct{}),
	}
	b.queue <- Event{EventType: "page_view"}

	b.Close()

	require.Equal(t, int64(1), b.Dropped())
}

func TestTrackAfterCloseDrops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b, err := New(Options{Endpoint: srv.URL, FlushInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	b.Close()

	require.False(t, b.Track(Event{EventType: "page_view"}))
}
