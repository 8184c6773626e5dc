package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/apiErrors"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// userResponse is the user as returned to clients, without the password hash.
type userResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Active: user.Active,
	}
}

func ListUsers(users *repository.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := users.GetAll()
		response := make([]userResponse, 0, len(all))
		for _, user := range all {
			response = append(response, toUserResponse(user))
		}
		writeJSON(w, response)
	}
}

// RegisterUser creates a company user. The plaintext password is validated and
// hashed inside the repository; it never reaches storage.
func RegisterUser(users *repository.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request registerUserRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid user payload", nil)
			return
		}

		user := &domain.User{
			Name:   request.Name,
			Email:  request.Email,
			Role:   request.Role,
			Active: true,
		}

		ok, errs := users.Register(user, request.Password)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrValidationFailed, "user rejected", errs)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toUserResponse(user))
	}
}

// DeactivateUser flips the active flag off instead of deleting, so audit
// references to the user survive.
func DeactivateUser(users *repository.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		ok, errs := users.Update(id, func(user *domain.User) {
			user.Active = false
		})
		if !ok {
			writeUpdateFailure(w, errs)
			return
		}

		record, _ := users.Find(id)
		writeJSON(w, toUserResponse(record))
	}
}
