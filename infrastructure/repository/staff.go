package repository

import (
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

var staffRules = validation.RuleTable{
	"name":          {validation.Required},
	"department":    {validation.Required},
	"basicSalary":   {validation.Required, validation.Amount},
	"ssnitEmployee": {validation.Amount},
	"ssnitEmployer": {validation.Amount},
	"payeTax":       {validation.Amount},
}

func NewStaff(store *storage.Adapter) *Collection[*domain.Staff] {
	return newCollection[*domain.Staff]("staff", storage.KeyStaff, staffRules, store)
}
