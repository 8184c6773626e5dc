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

func ListStaff(staff *repository.Collection[*domain.Staff]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, staff.GetAll())
	}
}

func CreateStaff(staff *repository.Collection[*domain.Staff]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var member domain.Staff
		if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid staff payload", nil)
			return
		}

		ok, errs := staff.Add(&member)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "staff member rejected", errs)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&member)
	}
}

func UpdateStaff(staff *repository.Collection[*domain.Staff]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var changes domain.Staff
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid staff payload", nil)
			return
		}

		ok, errs := staff.Update(id, func(member *domain.Staff) {
			member.Name = changes.Name
			member.Department = changes.Department
			member.Position = changes.Position
			member.BasicSalary = changes.BasicSalary
			member.SSNITEmployee = changes.SSNITEmployee
			member.SSNITEmployer = changes.SSNITEmployer
			member.PAYETax = changes.PAYETax
			member.Active = changes.Active
		})
		if !ok {
			writeUpdateFailure(w, errs)
			return
		}

		record, _ := staff.Find(id)
		writeJSON(w, record)
	}
}

func DeleteStaff(staff *repository.Collection[*domain.Staff]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !staff.Delete(id) {
			apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "could not persist deletion", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RunPayroll posts the current pay period for every active staff member. Each
// member is its own posting group; the ones already posted this period are
// deduplicated by the posting service.
func RunPayroll(staff *repository.Collection[*domain.Staff], integrator posting.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posted := 0
		skipped := 0
		for _, member := range staff.GetAll() {
			if !member.Active {
				skipped++
				continue
			}
			if integrator.ProcessPayrollCreated(member) {
				posted++
			} else {
				logrus.WithField("staff_id", member.ID).Warn("payroll posting deferred")
			}
		}

		writeJSON(w, map[string]any{
			"posted":  posted,
			"skipped": skipped,
		})
	}
}
