package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/reporting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

// GetSummaryReport builds the financial summary for ?start=&end= (inclusive
// YYYY-MM-DD dates).
func GetSummaryReport(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange := reporting.DateRange{
			Start: r.URL.Query().Get("start"),
			End:   r.URL.Query().Get("end"),
		}

		summary, err := reporter.GenerateSummary(dateRange)
		if err != nil {
			if errors.Is(err, reporting.ErrInvalidRange) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start and end must be YYYY-MM-DD with end >= start", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not build summary", nil)
			return
		}

		writeJSON(w, summary)
	}
}

// GetLedgerEntries returns the posting group recorded under one reference.
func GetLedgerEntries(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference := httprouter.ParamsFromContext(r.Context()).ByName("reference")

		entries := reporter.EntriesByReference(reference)
		if len(entries) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "no entries recorded for reference", nil)
			return
		}
		writeJSON(w, entries)
	}
}

// ListCustomerRollups returns the per-customer sale totals.
func ListCustomerRollups(store *storage.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollups := map[string]domain.CustomerRollup{}
		store.Get(storage.KeyCustomers, &rollups)
		writeJSON(w, rollups)
	}
}

// ListSupplierRollups returns the per-supplier expense totals.
func ListSupplierRollups(store *storage.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollups := map[string]domain.SupplierRollup{}
		store.Get(storage.KeySuppliers, &rollups)
		writeJSON(w, rollups)
	}
}
