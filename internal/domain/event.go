package domain

import (
	"encoding/json"
	"time"
)

// Integration event types. The set is closed: the posting service switches on
// these values when replaying the queue.
const (
	EventSaleCreated      = "SALE_CREATED"
	EventExpenseCreated   = "EXPENSE_CREATED"
	EventPayrollCreated   = "PAYROLL_CREATED"
	EventInventoryUpdated = "INVENTORY_UPDATED"
)

// IntegrationEvent is one entry of the durable outbox log. Events are appended
// once per domain mutation and never mutated except to flip Processed.
type IntegrationEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Module    string          `json:"module"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Processed bool            `json:"processed"`
}
