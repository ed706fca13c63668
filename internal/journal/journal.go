// internal/journal/journal.go
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Entry kinds recorded by the API surface.
const (
	KindBookAdded        = "book_added"
	KindMemberRegistered = "member_registered"
	KindCheckout         = "checkout"
	KindReturn           = "return"
)

// Entry is one recorded library activity.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	BookID     string    `json:"book_id,omitempty"`
	MemberID   string    `json:"member_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Journal is an append-only in-memory activity log. Entries are kept in
// insertion order and never removed.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	tracer  trace.Tracer
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		tracer: otel.Tracer("libracore/journal"),
	}
}

// Record appends one activity entry and returns it.
func (j *Journal) Record(ctx context.Context, kind, bookID, memberID string) Entry {
	_, span := j.tracer.Start(ctx, "journal.record",
		trace.WithAttributes(
			attribute.String("entry.kind", kind),
			attribute.String("book.id", bookID),
			attribute.String("member.id", memberID),
		),
	)
	defer span.End()

	entry := Entry{
		ID:         uuid.New(),
		Kind:       kind,
		BookID:     bookID,
		MemberID:   memberID,
		RecordedAt: time.Now().UTC(),
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	span.SetAttributes(attribute.String("entry.id", entry.ID.String()))
	return entry
}

// Entries returns a copy of all recorded entries in insertion order.
func (j *Journal) Entries(ctx context.Context) []Entry {
	_, span := j.tracer.Start(ctx, "journal.entries")
	defer span.End()

	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	span.SetAttributes(attribute.Int("entry.count", len(out)))
	return out
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}
