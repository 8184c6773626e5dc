package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ListSales returns every valid sale record.
func ListSales(sales *repository.Collection[*domain.Sale]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sales.GetAll())
	}
}

// CreateSale stores the sale and feeds it into the posting pipeline. A
// posting failure does not undo the sale: the event stays queued and the
// response flags the degraded state.
func CreateSale(sales *repository.Collection[*domain.Sale], integrator posting.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sale domain.Sale
		if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid sale payload", nil)
			return
		}

		ok, errs := sales.Add(&sale)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "sale rejected", errs)
			return
		}

		posted := integrator.ProcessSaleCreated(&sale)
		if !posted {
			logrus.WithField("sale_id", sale.ID).Warn("sale stored but posting deferred")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"sale":   &sale,
			"posted": posted,
		})
	}
}

// UpdateSale merges the request body onto the stored sale. Updates never
// repost: the ledger keeps the figures from creation time.
func UpdateSale(sales *repository.Collection[*domain.Sale]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var changes domain.Sale
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid sale payload", nil)
			return
		}

		ok, errs := sales.Update(id, func(sale *domain.Sale) {
			sale.CustomerName = changes.CustomerName
			sale.CustomerEmail = changes.CustomerEmail
			sale.ServiceType = changes.ServiceType
			sale.Subtotal = changes.Subtotal
			sale.VATAmount = changes.VATAmount
			sale.NHILAmount = changes.NHILAmount
			sale.GETFundAmount = changes.GETFundAmount
			sale.TotalAmount = changes.TotalAmount
			sale.PaymentMethod = changes.PaymentMethod
			sale.Date = changes.Date
		})
		if !ok {
			writeUpdateFailure(w, errs)
			return
		}

		record, _ := sales.Find(id)
		writeJSON(w, record)
	}
}

// DeleteSale removes the sale. Deleting an unknown id succeeds, matching the
// repository contract.
func DeleteSale(sales *repository.Collection[*domain.Sale]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !sales.Delete(id) {
			apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "could not persist deletion", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("error encoding response")
	}
}

func writeUpdateFailure(w http.ResponseWriter, errs []string) {
	for _, message := range errs {
		if message == "record not found" {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "record not found", nil)
			return
		}
	}
	apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "update rejected", errs)
}
