package domain

// Staff is a payroll staff member. The statutory contribution fields hold the
// amounts withheld for the current pay period and back the payroll postings.
type Staff struct {
	Meta          `mapstructure:",squash"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Position      string  `json:"position"`
	BasicSalary   float64 `json:"basicSalary"`
	SSNITEmployee float64 `json:"ssnitEmployee"`
	SSNITEmployer float64 `json:"ssnitEmployer"`
	PAYETax       float64 `json:"payeTax"`
	Active        bool    `json:"active"`
}
