package domain

import "github.com/shopspring/decimal"

// CustomerRollup accumulates per-customer sale totals, keyed by email. It is a
// read model: recomputable from the event log, counters never decrease.
type CustomerRollup struct {
	Email               string          `json:"email"`
	Name                string          `json:"name"`
	TotalSales          decimal.Decimal `json:"totalSales"`
	SaleCount           int             `json:"saleCount"`
	LastTransactionDate string          `json:"lastTransactionDate"`
}

// SupplierRollup accumulates per-supplier expense totals, keyed by name.
type SupplierRollup struct {
	Name                string          `json:"name"`
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	TransactionCount    int             `json:"transactionCount"`
	LastTransactionDate string          `json:"lastTransactionDate"`
}
