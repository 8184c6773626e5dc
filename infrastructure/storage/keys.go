package storage

// Logical keys of the persisted namespace. One JSON value per key; no two
// components write the same key.
const (
	KeyUser          = "user"
	KeyCompany       = "company"
	KeySales         = "sales"
	KeyExpenses      = "ghanaTaxExpenses"
	KeyStaff         = "payrollStaff"
	KeyCompanyUsers  = "companyUsers"
	KeyInventory     = "inventory"
	KeyEntries       = "accountingEntries"
	KeyEvents        = "integrationEvents"
	KeyCustomers     = "customers"
	KeySuppliers     = "suppliers"
	KeyNotifications = "notifications"
	KeyLastBackup    = "lastBackupTimestamp"
	KeyAppVersion    = "appVersion"

	// DisposablePrefix marks spilled backup artifacts that may be pruned to
	// recover space when a write hits the quota.
	DisposablePrefix = "backup:"
)
