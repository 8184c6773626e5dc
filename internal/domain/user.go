package domain

// User is a company back-office user. Only the bcrypt hash of the password is
// ever persisted.
type User struct {
	Meta         `mapstructure:",squash"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password" mapstructure:"password"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}
