package domain

import "time"

// Meta carries the fields shared by every persisted business record. Identifier
// and timestamps are always assigned by the repositories, never by callers.
type Meta struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Record is implemented by every entity stored through a repository.
type Record interface {
	RecordMeta() *Meta
}

func (m *Meta) RecordMeta() *Meta { return m }

// Stamp assigns the generated identifier and creation time on first write.
func (m *Meta) Stamp(id string, at time.Time) {
	m.ID = id
	m.CreatedAt = at
	m.UpdatedAt = nil
}

// Touch refreshes the update timestamp on merge-updates.
func (m *Meta) Touch(at time.Time) {
	m.UpdatedAt = &at
}
