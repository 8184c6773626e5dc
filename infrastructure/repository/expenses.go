package repository

import (
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

var expenseRules = validation.RuleTable{
	"supplier": {validation.Required},
	"amount":   {validation.Required, validation.Amount},
	"category": {validation.Required},
	"inputVat": {validation.Amount},
	"date":     {validation.Required, validation.Date},
}

func NewExpenses(store *storage.Adapter) *Collection[*domain.Expense] {
	return newCollection[*domain.Expense]("expenses", storage.KeyExpenses, expenseRules, store)
}
