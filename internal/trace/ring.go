package trace

import (
	"io"
	"slices"
	"sync"
)

// RingTracer keeps the most recent events in memory. It backs
// --trace-mode=ring and the LSP server, which dumps the tail of the
// trace when a request fails.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // slot the next event overwrites once buf is full
	limit int
	level Level
}

// NewRingTracer keeps at most capacity events (4096 when capacity <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		buf:   make([]Event, 0, min(capacity, 256)),
		limit: capacity,
		level: level,
	}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	stored := *ev
	stored.Seq = nextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) < t.limit {
		t.buf = append(t.buf, stored)
		return
	}
	t.buf[t.next] = stored
	t.next = (t.next + 1) % t.limit
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Concat(t.buf[t.next:], t.buf[:t.next])
}

// Errors filters Snapshot down to failure events.
func (t *RingTracer) Errors() []Event {
	return slices.DeleteFunc(t.Snapshot(), func(ev Event) bool {
		return ev.Kind != KindError
	})
}

// Dump writes Snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
