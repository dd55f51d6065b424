package memory

import (
	"context"
	"sync"
	"time"

	"unahotel/internal/app/outbox"
)

type outboxEntry struct {
	record   outbox.EventRecord
	attempts int
	retryAt  time.Time
	claimed  bool
	sent     bool
}

// Outbox keeps staged events in memory and doubles as the worker's store:
// Claim hands out the oldest unsent record, MarkSent/MarkFailed settle it.
type Outbox struct {
	mu      sync.Mutex
	entries []*outboxEntry
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, &outboxEntry{record: record})
	return nil
}

// Flush is a no-op: entries stay queued until a worker drains them.
func (o *Outbox) Flush(ctx context.Context) error {
	return nil
}

// Pending lists unsent records, oldest first. Tests and the readiness probe
// use it to observe the queue.
func (o *Outbox) Pending(ctx context.Context, limit int) ([]outbox.EventRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []outbox.EventRecord
	for _, e := range o.entries {
		if e.sent {
			continue
		}
		out = append(out, e.record)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *Outbox) Claim(ctx context.Context, workerID string) (*outbox.EventRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	for _, e := range o.entries {
		if e.sent || e.claimed || now.Before(e.retryAt) {
			continue
		}
		e.claimed = true
		rec := e.record
		return &rec, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e := o.find(id); e != nil {
		e.sent = true
		e.claimed = false
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e := o.find(id); e != nil {
		e.claimed = false
		e.attempts++
		e.retryAt = retryAt
	}
	return nil
}

func (o *Outbox) Attempts(ctx context.Context, id string) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e := o.find(id); e != nil {
		return e.attempts, nil
	}
	return 0, nil
}

func (o *Outbox) find(id string) *outboxEntry {
	for _, e := range o.entries {
		if e.record.ID == id {
			return e
		}
	}
	return nil
}

var _ outbox.Outbox = (*Outbox)(nil)
