// Package repository implements the typed CRUD collections. Every collection
// owns exactly one storage key, validates records on the way in AND on the way
// out, and is the only component that assigns identifiers and timestamps.
package repository

import (
	"time"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/log"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/utils"
)

// Collection is a validated record collection persisted as one JSON array
// under a single key. T is instantiated with a pointer entity type
// (*domain.Sale and friends). Collections are stateless between calls: every
// operation re-reads the backing key, mutates a copy, and persists the whole
// array in one write.
type Collection[T domain.Record] struct {
	name  string
	key   string
	rules validation.RuleTable
	store *storage.Adapter
}

func newCollection[T domain.Record](name, key string, rules validation.RuleTable, store *storage.Adapter) *Collection[T] {
	return &Collection[T]{name: name, key: key, rules: rules, store: store}
}

// Name returns the origin-module name recorded on integration events.
func (c *Collection[T]) Name() string { return c.name }

// GetAll returns every stored record that still passes validation, in
// insertion order. Records that fail (drift from out-of-band edits) are
// dropped from the result and logged, never returned.
func (c *Collection[T]) GetAll() []T {
	var stored []T
	c.store.Get(c.key, &stored)

	valid := make([]T, 0, len(stored))
	for _, record := range stored {
		result := validation.Validate(record, c.rules)
		if !result.IsValid {
			log.L.WithFields(log.Fields{
				"collection": c.name,
				"id":         record.RecordMeta().ID,
				"errors":     result.Errors,
			}).Warn("dropping stored record that fails validation")
			continue
		}
		valid = append(valid, record)
	}
	return valid
}

// Find returns the record with the given id, reading through the same
// validation filter as GetAll.
func (c *Collection[T]) Find(id string) (T, bool) {
	for _, record := range c.GetAll() {
		if record.RecordMeta().ID == id {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// Add assigns a fresh identifier and creation timestamp, validates the record
// and appends it. Client-supplied id/createdAt values are overwritten, never
// trusted. Returns false, with state untouched, on validation or write
// failure.
func (c *Collection[T]) Add(record T) (bool, []string) {
	id, err := utils.GenerateID()
	if err != nil {
		log.L.WithError(err).WithField("collection", c.name).Error("identifier generation failed")
		return false, []string{"could not generate identifier"}
	}
	record.RecordMeta().Stamp(id, time.Now().UTC())

	result := validation.Validate(record, c.rules)
	if !result.IsValid {
		return false, result.Errors
	}

	records := append(c.GetAll(), record)
	if !c.store.Set(c.key, records) {
		return false, []string{"persistence failed"}
	}
	return true, nil
}

// Update merges changes onto the stored record via the apply callback, stamps
// updatedAt and revalidates the merged result. Unknown ids and validation
// failures leave the stored record unchanged and return false.
func (c *Collection[T]) Update(id string, apply func(T)) (bool, []string) {
	records := c.GetAll()
	for _, record := range records {
		if record.RecordMeta().ID != id {
			continue
		}

		apply(record)
		record.RecordMeta().ID = id // the id itself is never updatable
		record.RecordMeta().Touch(time.Now().UTC())

		result := validation.Validate(record, c.rules)
		if !result.IsValid {
			return false, result.Errors
		}
		if !c.store.Set(c.key, records) {
			return false, []string{"persistence failed"}
		}
		return true, nil
	}
	return false, []string{"record not found"}
}

// Delete removes the record with the given id. Deleting an id that does not
// exist is a successful no-op; only a failed write reports false.
func (c *Collection[T]) Delete(id string) bool {
	records := c.GetAll()
	kept := make([]T, 0, len(records))
	removed := false
	for _, record := range records {
		if record.RecordMeta().ID == id {
			removed = true
			continue
		}
		kept = append(kept, record)
	}

	if !removed {
		return true
	}
	return c.store.Set(c.key, kept)
}

// ReplaceAll swaps the whole collection, used by restore. Every incoming
// record passes the same gate as a normal write; records that fail are
// skipped with a warning rather than trusted.
func (c *Collection[T]) ReplaceAll(records []T) bool {
	valid := make([]T, 0, len(records))
	for _, record := range records {
		result := validation.Validate(record, c.rules)
		if !result.IsValid {
			log.L.WithFields(log.Fields{
				"collection": c.name,
				"id":         record.RecordMeta().ID,
				"errors":     result.Errors,
			}).Warn("skipping restored record that fails validation")
			continue
		}
		valid = append(valid, record)
	}
	return c.store.Set(c.key, valid)
}
