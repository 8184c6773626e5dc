package repository

import (
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

// Rule tables are the single source of truth for record shape. Both writes
// and reads pass through them.
var saleRules = validation.RuleTable{
	"customerName":  {validation.Required},
	"customerEmail": {validation.Email},
	"serviceType":   {validation.Required},
	"subtotal":      {validation.Required, validation.Amount},
	"vatAmount":     {validation.Amount},
	"nhilAmount":    {validation.Amount},
	"getfundAmount": {validation.Amount},
	"totalAmount":   {validation.Required, validation.Amount},
	"date":          {validation.Required, validation.Date},
}

func NewSales(store *storage.Adapter) *Collection[*domain.Sale] {
	return newCollection[*domain.Sale]("sales", storage.KeySales, saleRules, store)
}
