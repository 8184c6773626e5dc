package domain

// Expense is a supplier expense entry. Category drives the debit account used
// when the expense is posted to the ledger.
type Expense struct {
	Meta        `mapstructure:",squash"`
	Supplier    string  `json:"supplier"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	InputVAT    float64 `json:"inputVat"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}
