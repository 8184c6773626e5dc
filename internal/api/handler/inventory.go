package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

func ListInventory(inventory *repository.Collection[*domain.InventoryItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, inventory.GetAll())
	}
}

// CreateInventoryItem stores a new stock item and posts the initial stock as
// an increase.
func CreateInventoryItem(inventory *repository.Collection[*domain.InventoryItem], integrator posting.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.InventoryItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid inventory payload", nil)
			return
		}

		ok, errs := inventory.Add(&item)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "inventory item rejected", errs)
			return
		}

		posted := integrator.ProcessInventoryUpdate(&item, domain.InventoryChangeIncrease)
		if !posted {
			logrus.WithField("item_id", item.ID).Warn("inventory item stored but posting deferred")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"item":   &item,
			"posted": posted,
		})
	}
}

// UpdateInventoryItem merges the changes, then reports the stock movement to
// the posting pipeline. The change direction comes from comparing quantities
// before and after the merge.
func UpdateInventoryItem(inventory *repository.Collection[*domain.InventoryItem], integrator posting.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var changes domain.InventoryItem
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid inventory payload", nil)
			return
		}

		before, found := inventory.Find(id)
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "record not found", nil)
			return
		}
		previousQuantity := before.Quantity

		ok, errs := inventory.Update(id, func(item *domain.InventoryItem) {
			item.Name = changes.Name
			item.Unit = changes.Unit
			item.Quantity = changes.Quantity
			item.UnitCost = changes.UnitCost
			item.ReorderLevel = changes.ReorderLevel
			item.Supplier = changes.Supplier
		})
		if !ok {
			writeUpdateFailure(w, errs)
			return
		}

		after, _ := inventory.Find(id)

		changeType := domain.InventoryChangeDecrease
		if after.Quantity >= previousQuantity {
			changeType = domain.InventoryChangeIncrease
		}

		posted := integrator.ProcessInventoryUpdate(after, changeType)
		if !posted {
			logrus.WithField("item_id", id).Warn("inventory update stored but posting deferred")
		}

		writeJSON(w, map[string]any{
			"item":   after,
			"posted": posted,
		})
	}
}

func DeleteInventoryItem(inventory *repository.Collection[*domain.InventoryItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !inventory.Delete(id) {
			apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "could not persist deletion", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListReorderNotifications returns the reorder alerts raised by inventory
// postings, newest last.
func ListReorderNotifications(store *storage.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var notifications []domain.ReorderNotification
		store.Get(storage.KeyNotifications, &notifications)
		if notifications == nil {
			notifications = []domain.ReorderNotification{}
		}
		writeJSON(w, notifications)
	}
}
