package repository

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

var userRules = validation.RuleTable{
	"name":     {validation.Required},
	"email":    {validation.Required, validation.Email},
	"password": {validation.Required},
	"role":     {validation.Required},
}

// Users wraps the company-user collection so plaintext passwords never reach
// the store: Register hashes with bcrypt before the usual Add path.
type Users struct {
	*Collection[*domain.User]
}

func NewUsers(store *storage.Adapter) *Users {
	return &Users{newCollection[*domain.User]("companyUsers", storage.KeyCompanyUsers, userRules, store)}
}

// Register validates the plaintext password, hashes it and stores the user.
func (u *Users) Register(user *domain.User, password string) (bool, []string) {
	if ok, errs := checkPassword(password); !ok {
		return false, errs
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range u.GetAll() {
		if strings.EqualFold(existing.Email, email) {
			return false, []string{"email already registered"}
		}
	}
	user.Email = email

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, []string{"could not hash password"}
	}
	user.PasswordHash = string(hash)

	return u.Add(user)
}

// CheckPassword compares a candidate password against the stored hash.
func (u *Users) CheckPassword(user *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func checkPassword(password string) (bool, []string) {
	result := validation.Validate(
		map[string]string{"password": password},
		validation.RuleTable{"password": {validation.Required, validation.Password}},
	)
	return result.IsValid, result.Errors
}
