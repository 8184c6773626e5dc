// Package queue persists the append-only integration event log. The log is
// the durable record of which domain mutations the ledger has not yet seen:
// after a crash, draining it and re-posting is what stands in for the
// multi-key transaction the store cannot provide.
package queue

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrNotPersisted = errors.New("queue: event could not be persisted")

// Queue is the persisted event log under the integrationEvents key.
type Queue struct {
	store *storage.Adapter
}

func New(store *storage.Adapter) *Queue {
	return &Queue{store: store}
}

// Record appends an unprocessed event wrapping the given payload. The event
// id doubles as the idempotency reference for postings that have no single
// originating record (inventory movements).
func (q *Queue) Record(eventType, module string, payload interface{}) (*domain.IntegrationEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling event payload")
	}

	event := domain.IntegrationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Module:    module,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Processed: false,
	}

	events := q.all()
	events = append(events, event)
	if !q.store.Set(storage.KeyEvents, events) {
		return nil, ErrNotPersisted
	}
	return &event, nil
}

// DrainUnprocessed returns the unprocessed events in the order they were
// recorded. The events stay in the log; callers flip them with MarkProcessed
// once posting succeeded.
func (q *Queue) DrainUnprocessed() []domain.IntegrationEvent {
	var pending []domain.IntegrationEvent
	for _, event := range q.all() {
		if !event.Processed {
			pending = append(pending, event)
		}
	}
	return pending
}

// MarkProcessed flips the processed flag. The only mutation events ever see.
func (q *Queue) MarkProcessed(id string) bool {
	events := q.all()
	for i := range events {
		if events[i].ID == id {
			if events[i].Processed {
				return true
			}
			events[i].Processed = true
			return q.store.Set(storage.KeyEvents, events)
		}
	}
	return false
}

// Compact drops fully processed events older than the retention window so the
// log stays bounded. Unprocessed events are kept regardless of age. Returns
// the number of events removed.
func (q *Queue) Compact(retention time.Duration) int {
	cutoff := time.Now().UTC().Add(-retention)

	events := q.all()
	kept := make([]domain.IntegrationEvent, 0, len(events))
	for _, event := range events {
		if event.Processed && event.Timestamp.Before(cutoff) {
			continue
		}
		kept = append(kept, event)
	}

	removed := len(events) - len(kept)
	if removed == 0 {
		return 0
	}
	if !q.store.Set(storage.KeyEvents, kept) {
		log.L.Warn("event log compaction could not be persisted")
		return 0
	}

	log.L.WithField("removed", removed).Info("compacted integration event log")
	return removed
}

// Size returns the total number of events currently in the log.
func (q *Queue) Size() int {
	return len(q.all())
}

func (q *Queue) all() []domain.IntegrationEvent {
	var events []domain.IntegrationEvent
	q.store.Get(storage.KeyEvents, &events)
	return events
}
