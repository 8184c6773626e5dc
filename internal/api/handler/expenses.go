package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

func ListExpenses(expenses *repository.Collection[*domain.Expense]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, expenses.GetAll())
	}
}

func CreateExpense(expenses *repository.Collection[*domain.Expense], integrator posting.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var expense domain.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid expense payload", nil)
			return
		}

		ok, errs := expenses.Add(&expense)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "expense rejected", errs)
			return
		}

		posted := integrator.ProcessExpenseCreated(&expense)
		if !posted {
			logrus.WithField("expense_id", expense.ID).Warn("expense stored but posting deferred")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"expense": &expense,
			"posted":  posted,
		})
	}
}

func UpdateExpense(expenses *repository.Collection[*domain.Expense]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var changes domain.Expense
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid expense payload", nil)
			return
		}

		ok, errs := expenses.Update(id, func(expense *domain.Expense) {
			expense.Supplier = changes.Supplier
			expense.Amount = changes.Amount
			expense.Category = changes.Category
			expense.InputVAT = changes.InputVAT
			expense.Date = changes.Date
			expense.Description = changes.Description
		})
		if !ok {
			writeUpdateFailure(w, errs)
			return
		}

		record, _ := expenses.Find(id)
		writeJSON(w, record)
	}
}

func DeleteExpense(expenses *repository.Collection[*domain.Expense]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !expenses.Delete(id) {
			apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "could not persist deletion", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
