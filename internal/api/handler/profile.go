package handler

import (
	"net/http"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

func GetUserProfile(profiles *repository.Profiles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, found := profiles.UserProfile()
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "no user profile stored", nil)
			return
		}
		writeJSON(w, profile)
	}
}

func SetUserProfile(profiles *repository.Profiles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile domain.UserProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid profile payload", nil)
			return
		}

		if ok, errs := profiles.SetUserProfile(&profile); !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "profile rejected", errs)
			return
		}
		writeJSON(w, &profile)
	}
}

func GetCompanyProfile(profiles *repository.Profiles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, found := profiles.Company()
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "no company profile stored", nil)
			return
		}
		writeJSON(w, profile)
	}
}

func SetCompanyProfile(profiles *repository.Profiles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile domain.CompanyProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid profile payload", nil)
			return
		}

		if ok, errs := profiles.SetCompany(&profile); !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "profile rejected", errs)
			return
		}
		writeJSON(w, &profile)
	}
}
