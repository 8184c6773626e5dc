package posting

// Ledger account names. Not a full chart of accounts: just the closed set the
// back office posts against.
const (
	AccountsReceivable = "Accounts Receivable"
	AccountsPayable    = "Accounts Payable"
	SalesRevenue       = "Sales Revenue"
	VATPayable         = "VAT Payable"
	NHILPayable        = "NHIL Payable"
	GETFundPayable     = "GETFund Payable"
	VATReceivable      = "VAT Receivable"
	SalaryExpense      = "Salary Expense"
	SalariesPayable    = "Salaries Payable"
	SSNITPayable       = "SSNIT Payable"
	PAYEPayable        = "PAYE Payable"
	InventoryAccount   = "Inventory"
	OtherExpense       = "Other Expense"
)

// expenseAccounts maps an expense category to its debit account. Categories
// outside the table fall back to OtherExpense.
var expenseAccounts = map[string]string{
	"Utilities":       "Utilities Expense",
	"Rent":            "Rent Expense",
	"Supplies":        "Supplies Expense",
	"Maintenance":     "Maintenance Expense",
	"Food & Beverage": "Food & Beverage Expense",
	"Marketing":       "Marketing Expense",
	"Transport":       "Transport Expense",
	"Insurance":       "Insurance Expense",
}

func expenseAccount(category string) string {
	if account, ok := expenseAccounts[category]; ok {
		return account
	}
	return OtherExpense
}
