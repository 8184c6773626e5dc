package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/reporting"
)

func newReporter(t *testing.T) (reporting.Reporter, *storage.Adapter) {
	t.Helper()
	store := storage.NewAdapter(storage.NewMemoryBackend())

	sales := repository.NewSales(store)
	expenses := repository.NewExpenses(store)
	staff := repository.NewStaff(store)
	inventory := repository.NewInventory(store)

	addSale := func(date string, total float64) {
		ok, errs := sales.Add(&domain.Sale{
			CustomerName: "J. Doe",
			ServiceType:  "Room",
			Subtotal:     total,
			TotalAmount:  total,
			Date:         date,
		})
		require.True(t, ok, "sale rejected: %v", errs)
	}
	addSale("2024-03-01", 100)
	addSale("2024-03-15", 250)
	addSale("2024-04-01", 999) // outside the March range

	ok, errs := expenses.Add(&domain.Expense{
		Supplier: "Acme Supplies",
		Amount:   80,
		Category: "Utilities",
		Date:     "2024-03-10",
	})
	require.True(t, ok, "expense rejected: %v", errs)

	ok, _ = staff.Add(&domain.Staff{
		Name: "A. Mensah", Department: "Housekeeping", Position: "Cleaner",
		BasicSalary: 1000, SSNITEmployer: 130, Active: true,
	})
	require.True(t, ok)
	ok, _ = staff.Add(&domain.Staff{
		Name: "B. Owusu", Department: "Kitchen", Position: "Cook",
		BasicSalary: 2000, SSNITEmployer: 260, Active: false,
	})
	require.True(t, ok)

	ok, _ = inventory.Add(&domain.InventoryItem{
		Name: "Towels", Unit: "pcs", Quantity: 5, UnitCost: 10, ReorderLevel: 10,
	})
	require.True(t, ok)
	ok, _ = inventory.Add(&domain.InventoryItem{
		Name: "Soap", Unit: "pcs", Quantity: 100, UnitCost: 2, ReorderLevel: 20,
	})
	require.True(t, ok)

	return reporting.NewService(sales, expenses, staff, inventory, store), store
}

func TestGenerateSummary(t *testing.T) {
	reporter, _ := newReporter(t)

	summary, err := reporter.GenerateSummary(reporting.DateRange{Start: "2024-03-01", End: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 350.0, summary.TotalRevenue)
	assert.Equal(t, 2, summary.SaleCount)
	assert.Equal(t, 80.0, summary.TotalExpenses)
	assert.Equal(t, 1, summary.ExpenseCount)
	assert.Equal(t, 270.0, summary.NetIncome)

	// Valuation and staff cost are point-in-time, not range-filtered.
	assert.Equal(t, 250.0, summary.InventoryValuation) // 5*10 + 100*2
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 1130.0, summary.StaffCost) // active staff only
}

func TestGenerateSummaryEmptyRange(t *testing.T) {
	reporter, _ := newReporter(t)

	summary, err := reporter.GenerateSummary(reporting.DateRange{Start: "2023-01-01", End: "2023-01-31"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0, summary.SaleCount)
	assert.Equal(t, 0.0, summary.TotalExpenses)
	assert.Equal(t, 0.0, summary.NetIncome)
}

func TestGenerateSummaryInvalidRange(t *testing.T) {
	reporter, _ := newReporter(t)

	tests := []struct {
		name      string
		dateRange reporting.DateRange
	}{
		{"missing start", reporting.DateRange{End: "2024-03-31"}},
		{"malformed end", reporting.DateRange{Start: "2024-03-01", End: "31/03/2024"}},
		{"end before start", reporting.DateRange{Start: "2024-03-31", End: "2024-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reporter.GenerateSummary(tt.dateRange)
			assert.ErrorIs(t, err, reporting.ErrInvalidRange)
		})
	}
}

func TestEntriesByReference(t *testing.T) {
	reporter, store := newReporter(t)

	entries := []domain.AccountingEntry{
		{ID: "e1", Reference: "sale-1", Module: "sales", CreatedAt: time.Now().UTC()},
		{ID: "e2", Reference: "sale-1", Module: "sales", CreatedAt: time.Now().UTC()},
		{ID: "e3", Reference: "expense-1", Module: "expenses", CreatedAt: time.Now().UTC()},
	}
	require.True(t, store.Set(storage.KeyEntries, entries))

	group := reporter.EntriesByReference("sale-1")
	require.Len(t, group, 2)
	assert.Equal(t, "e1", group[0].ID)
	assert.Equal(t, "e2", group[1].ID)

	assert.Empty(t, reporter.EntriesByReference("unknown"))
}
