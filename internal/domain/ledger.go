package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingEntry is one leg of a double-entry posting group. All entries
// sharing a Reference were derived from the same domain record and must sum to
// equal debits and credits.
type AccountingEntry struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	Module        string          `json:"module"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ReorderNotification is emitted when a stock update leaves an item at or
// below its reorder level. Not a ledger artifact.
type ReorderNotification struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	Quantity     float64   `json:"quantity"`
	ReorderLevel float64   `json:"reorderLevel"`
	CreatedAt    time.Time `json:"createdAt"`
}
