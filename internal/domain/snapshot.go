package domain

// Snapshot is a full, versioned export of the addressable state. It is
// immutable once produced; restore replays it through the normal repository
// write path so every record is revalidated.
type Snapshot struct {
	Timestamp string       `json:"timestamp" mapstructure:"timestamp"`
	Version   string       `json:"version" mapstructure:"version"`
	Data      SnapshotData `json:"data" mapstructure:"data"`
}

type SnapshotData struct {
	User         *UserProfile    `json:"user" mapstructure:"user"`
	Company      *CompanyProfile `json:"company" mapstructure:"company"`
	Sales        []*Sale         `json:"sales" mapstructure:"sales"`
	Expenses     []*Expense      `json:"expenses" mapstructure:"expenses"`
	Staff        []*Staff        `json:"staff" mapstructure:"staff"`
	CompanyUsers []*User         `json:"companyUsers" mapstructure:"companyUsers"`
}
