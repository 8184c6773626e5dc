package repository

import (
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

var inventoryRules = validation.RuleTable{
	"name":         {validation.Required},
	"quantity":     {validation.Required, validation.Amount},
	"unitCost":     {validation.Required, validation.Amount},
	"reorderLevel": {validation.Amount},
}

func NewInventory(store *storage.Adapter) *Collection[*domain.InventoryItem] {
	return newCollection[*domain.InventoryItem]("inventory", storage.KeyInventory, inventoryRules, store)
}
