package domain

// Inventory change types carried on INVENTORY_UPDATED events.
const (
	InventoryChangeIncrease = "increase"
	InventoryChangeDecrease = "decrease"
)

// InventoryItem is a stock item. Quantity at or below ReorderLevel triggers a
// reorder notification when the item is updated.
type InventoryItem struct {
	Meta         `mapstructure:",squash"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unitCost"`
	ReorderLevel float64 `json:"reorderLevel"`
	Supplier     string  `json:"supplier"`
}

// InventoryChange wraps the item and the kind of stock movement for the event
// payload, so a replayed event posts exactly what the original call saw.
type InventoryChange struct {
	Item       *InventoryItem `json:"item"`
	ChangeType string         `json:"changeType"`
}
