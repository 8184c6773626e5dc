package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/queue"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
)

func newQueue() (*queue.Queue, *storage.Adapter) {
	store := storage.NewAdapter(storage.NewMemoryBackend())
	return queue.New(store), store
}

func TestQueueRecordAndDrainOrder(t *testing.T) {
	q, _ := newQueue()

	first, err := q.Record(domain.EventSaleCreated, "sales", map[string]string{"n": "1"})
	require.NoError(t, err)
	second, err := q.Record(domain.EventExpenseCreated, "expenses", map[string]string{"n": "2"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Processed)

	pending := q.DrainUnprocessed()
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestQueueMarkProcessed(t *testing.T) {
	q, _ := newQueue()

	event, err := q.Record(domain.EventSaleCreated, "sales", nil)
	require.NoError(t, err)

	assert.True(t, q.MarkProcessed(event.ID))
	assert.Empty(t, q.DrainUnprocessed())

	// Marking twice is a no-op, unknown ids report false.
	assert.True(t, q.MarkProcessed(event.ID))
	assert.False(t, q.MarkProcessed("missing"))
}

func TestQueueCompact(t *testing.T) {
	q, store := newQueue()

	old, err := q.Record(domain.EventSaleCreated, "sales", nil)
	require.NoError(t, err)
	require.True(t, q.MarkProcessed(old.ID))

	oldPending, err := q.Record(domain.EventExpenseCreated, "expenses", nil)
	require.NoError(t, err)

	recent, err := q.Record(domain.EventPayrollCreated, "payroll", nil)
	require.NoError(t, err)
	require.True(t, q.MarkProcessed(recent.ID))

	// Age the first two events past the retention window.
	var events []domain.IntegrationEvent
	require.True(t, store.Get(storage.KeyEvents, &events))
	aged := time.Now().UTC().Add(-100 * 24 * time.Hour)
	events[0].Timestamp = aged
	events[1].Timestamp = aged
	require.True(t, store.Set(storage.KeyEvents, events))

	removed := q.Compact(90 * 24 * time.Hour)

	// Only the processed old event is dropped; the unprocessed one survives
	// regardless of age.
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, q.Size())

	pending := q.DrainUnprocessed()
	require.Len(t, pending, 1)
	assert.Equal(t, oldPending.ID, pending[0].ID)
}

func TestQueueCompactNothingToRemove(t *testing.T) {
	q, _ := newQueue()

	_, err := q.Record(domain.EventSaleCreated, "sales", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, q.Compact(90*24*time.Hour))
	assert.Equal(t, 1, q.Size())
}
