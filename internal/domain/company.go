package domain

// UserProfile is the single signed-in profile stored under the "user" key.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CompanyProfile is the hotel's own identity stored under the "company" key.
type CompanyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TIN     string `json:"tin"`
}
