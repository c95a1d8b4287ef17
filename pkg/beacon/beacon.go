package beacon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixelcart/pixelcart-backend/pkg/logger"
)

// Event is one analytics beacon payload. The ingestion service stamps its own
// timestamp; the beacon never sends one.
type Event struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	EventType string         `json:"event_type"`
	PagePath  string         `json:"page_path"`
	PageURL   string         `json:"page_url,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Options configures a Beacon.
type Options struct {
	// Endpoint is the analytics ingestion URL (POST /analytics).
	Endpoint string
	// QueueSize bounds the in-memory event queue. Defaults to 256.
	QueueSize int
	// FlushInterval is how often the flusher wakes when the queue is idle.
	// Defaults to 2s.
	FlushInterval time.Duration
	// HTTPClient overrides the transport (tests). Defaults to a 5s-timeout
	// client.
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Beacon captures events into a bounded queue and delivers them best-effort
// in the background. A delivery is attempted twice, then the event is
// dropped; a full queue drops immediately. No ordering is guaranteed across
// event types.
type Beacon struct {
	opts    Options
	queue   chan Event
	closing chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
	sent    atomic.Int64

	closeOnce sync.Once
}

// New validates the options and starts the background flusher.
func New(opts Options) (*Beacon, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, errors.New("beacon endpoint is required")
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 2 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}

	b := &Beacon{
		opts:    opts,
		queue:   make(chan Event, opts.QueueSize),
		closing: make(chan struct{}),
	}

	b.wg.Add(1)
	go b.flushLoop()

	return b, nil
}

// Track enqueues an event. It never blocks: when the queue is full the event
// is dropped and counted.
func (b *Beacon) Track(event Event) bool {
	select {
	case <-b.closing:
		b.dropped.Add(1)
		return false
	default:
	}

	select {
	case b.queue <- event:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Dropped reports how many events were discarded (full queue or failed
// delivery after the retry).
func (b *Beacon) Dropped() int64 {
	return b.dropped.Load()
}

// Sent reports successfully delivered events.
func (b *Beacon) Sent() int64 {
	return b.sent.Load()
}

// Close stops accepting events, drains whatever is queued, and waits for the
// flusher to exit.
func (b *Beacon) Close() {
	b.closeOnce.Do(func() {
		close(b.closing)
	})
	b.wg.Wait()

	// A Track racing the shutdown can land an event in the queue after the
	// flusher's final drain. Count whatever is left behind as dropped.
	for {
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
			return
		}
	}
}

func (b *Beacon) flushLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-b.queue:
			b.deliver(event)
		case <-ticker.C:
			b.drainPending()
		case <-b.closing:
			b.drainPending()
			return
		}
	}
}

func (b *Beacon) drainPending() {
	for {
		select {
		case event := <-b.queue:
			b.deliver(event)
		default:
			return
		}
	}
}

// deliver posts the event, retrying a failure once before dropping.
func (b *Beacon) deliver(event Event) {
	if err := b.post(event); err == nil {
		b.sent.Add(1)
		return
	}
	if err := b.post(event); err == nil {
		b.sent.Add(1)
		return
	}
	b.dropped.Add(1)
	if b.opts.Logger != nil {
		ctx := b.opts.Logger.WithField(context.Background(), "event_type", event.EventType)
		b.opts.Logger.Warn(ctx, "beacon event dropped after retry")
	}
}

func (b *Beacon) post(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, b.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.opts.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("beacon delivery rejected: %s", resp.Status)
	}
	return nil
}
