package posting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/queue"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
)

func newService() (*Service, *storage.Adapter) {
	store := storage.NewAdapter(storage.NewMemoryBackend())
	return &Service{store: store, queue: queue.New(store)}, store
}

func storedEntries(store *storage.Adapter) []domain.AccountingEntry {
	var entries []domain.AccountingEntry
	store.Get(storage.KeyEntries, &entries)
	return entries
}

func entriesFor(store *storage.Adapter, reference string) []domain.AccountingEntry {
	var group []domain.AccountingEntry
	for _, entry := range storedEntries(store) {
		if entry.Reference == reference {
			group = append(group, entry)
		}
	}
	return group
}

// groupIsBalanced checks the structural invariant: every entry names both a
// debit and a credit account and carries a positive amount, so the sum of
// debits always equals the sum of credits.
func groupIsBalanced(t *testing.T, group []domain.AccountingEntry) {
	t.Helper()
	for _, entry := range group {
		assert.NotEmpty(t, entry.DebitAccount)
		assert.NotEmpty(t, entry.CreditAccount)
		assert.True(t, entry.Amount.IsPositive(), "entry %q has non-positive amount", entry.Description)
	}
}

func saleFixture() *domain.Sale {
	sale := &domain.Sale{
		CustomerName:  "J. Doe",
		CustomerEmail: "j.doe@example.com",
		ServiceType:   "Room",
		Subtotal:      100,
		VATAmount:     12.5,
		TotalAmount:   112.5,
		Date:          "2024-03-01",
	}
	sale.Stamp("sale-1", time.Now().UTC())
	return sale
}

func TestProcessSaleCreated(t *testing.T) {
	service, store := newService()

	require.True(t, service.ProcessSaleCreated(saleFixture()))

	group := entriesFor(store, "sale-1")
	require.Len(t, group, 2)
	groupIsBalanced(t, group)

	revenue := group[0]
	assert.Equal(t, AccountsReceivable, revenue.DebitAccount)
	assert.Equal(t, SalesRevenue, revenue.CreditAccount)
	assert.True(t, revenue.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "sales", revenue.Module)
	assert.Equal(t, "2024-03-01", revenue.Date)

	vat := group[1]
	assert.Equal(t, AccountsReceivable, vat.DebitAccount)
	assert.Equal(t, VATPayable, vat.CreditAccount)
	assert.True(t, vat.Amount.Equal(decimal.NewFromFloat(12.5)))

	// The event is recorded and marked processed.
	assert.Empty(t, service.queue.DrainUnprocessed())
	assert.Equal(t, 1, service.queue.Size())
}

func TestProcessSaleCreatedIsIdempotent(t *testing.T) {
	service, store := newService()

	sale := saleFixture()
	require.True(t, service.ProcessSaleCreated(sale))
	require.True(t, service.ProcessSaleCreated(sale))

	// Two events recorded, one posting group.
	assert.Equal(t, 2, service.queue.Size())
	assert.Len(t, entriesFor(store, "sale-1"), 2)
}

func TestProcessSaleCreatedSkipsZeroTaxLegs(t *testing.T) {
	service, store := newService()

	sale := saleFixture()
	sale.VATAmount = 0
	sale.TotalAmount = 100
	require.True(t, service.ProcessSaleCreated(sale))

	group := entriesFor(store, "sale-1")
	require.Len(t, group, 1)
	assert.Equal(t, SalesRevenue, group[0].CreditAccount)
}

func TestProcessSaleCreatedUpdatesCustomerRollup(t *testing.T) {
	service, store := newService()

	require.True(t, service.ProcessSaleCreated(saleFixture()))

	rollups := map[string]domain.CustomerRollup{}
	require.True(t, store.Get(storage.KeyCustomers, &rollups))
	rollup, ok := rollups["j.doe@example.com"]
	require.True(t, ok)
	assert.Equal(t, "J. Doe", rollup.Name)
	assert.True(t, rollup.TotalSales.Equal(decimal.NewFromFloat(112.5)))
	assert.Equal(t, 1, rollup.SaleCount)
	assert.Equal(t, "2024-03-01", rollup.LastTransactionDate)

	// A second sale from the same customer accumulates.
	second := saleFixture()
	second.Stamp("sale-2", time.Now().UTC())
	second.Subtotal = 50
	second.VATAmount = 0
	second.TotalAmount = 50
	second.Date = "2024-03-05"
	require.True(t, service.ProcessSaleCreated(second))

	require.True(t, store.Get(storage.KeyCustomers, &rollups))
	rollup = rollups["j.doe@example.com"]
	assert.True(t, rollup.TotalSales.Equal(decimal.NewFromFloat(162.5)))
	assert.Equal(t, 2, rollup.SaleCount)
	assert.Equal(t, "2024-03-05", rollup.LastTransactionDate)
}

func TestProcessExpenseCreated(t *testing.T) {
	service, store := newService()

	expense := &domain.Expense{
		Supplier: "Acme Supplies",
		Amount:   100,
		Category: "Utilities",
		Date:     "2024-03-02",
	}
	expense.Stamp("expense-1", time.Now().UTC())

	require.True(t, service.ProcessExpenseCreated(expense))

	group := entriesFor(store, "expense-1")
	require.Len(t, group, 1)
	groupIsBalanced(t, group)
	assert.Equal(t, "Utilities Expense", group[0].DebitAccount)
	assert.Equal(t, AccountsPayable, group[0].CreditAccount)
	assert.True(t, group[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "expenses", group[0].Module)

	// Repeat is a no-op against the ledger.
	require.True(t, service.ProcessExpenseCreated(expense))
	assert.Len(t, entriesFor(store, "expense-1"), 1)

	rollups := map[string]domain.SupplierRollup{}
	require.True(t, store.Get(storage.KeySuppliers, &rollups))
	rollup := rollups["Acme Supplies"]
	assert.True(t, rollup.TotalSpent.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, rollup.TransactionCount)
}

func TestProcessExpenseCreatedWithInputVATAndUnknownCategory(t *testing.T) {
	service, store := newService()

	expense := &domain.Expense{
		Supplier: "Acme Supplies",
		Amount:   200,
		Category: "Misc",
		InputVAT: 15,
		Date:     "2024-03-02",
	}
	expense.Stamp("expense-2", time.Now().UTC())

	require.True(t, service.ProcessExpenseCreated(expense))

	group := entriesFor(store, "expense-2")
	require.Len(t, group, 2)
	assert.Equal(t, OtherExpense, group[0].DebitAccount)
	assert.Equal(t, VATReceivable, group[1].DebitAccount)
	assert.True(t, group[1].Amount.Equal(decimal.NewFromInt(15)))
}

func TestProcessPayrollCreated(t *testing.T) {
	service, store := newService()

	staff := &domain.Staff{
		Name:          "A. Mensah",
		BasicSalary:   3000,
		SSNITEmployee: 165,
		SSNITEmployer: 390,
		PAYETax:       250,
		Active:        true,
	}
	staff.Stamp("staff-1", time.Now().UTC())

	require.True(t, service.ProcessPayrollCreated(staff))

	group := entriesFor(store, "staff-1")
	require.Len(t, group, 4)
	groupIsBalanced(t, group)

	gross := group[0]
	assert.Equal(t, SalaryExpense, gross.DebitAccount)
	assert.Equal(t, SalariesPayable, gross.CreditAccount)
	assert.True(t, gross.Amount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "payroll", gross.Module)

	// Contributions move from salaries payable to the statutory payables.
	assert.Equal(t, SSNITPayable, group[1].CreditAccount)
	assert.Equal(t, SSNITPayable, group[2].CreditAccount)
	assert.Equal(t, PAYEPayable, group[3].CreditAccount)

	// Running payroll twice in the same period posts once.
	require.True(t, service.ProcessPayrollCreated(staff))
	assert.Len(t, entriesFor(store, "staff-1"), 4)
}

func TestProcessInventoryUpdate(t *testing.T) {
	service, store := newService()

	item := &domain.InventoryItem{
		Name:         "Towels",
		Unit:         "pcs",
		Quantity:     40,
		UnitCost:     12.5,
		ReorderLevel: 10,
		Supplier:     "Acme Supplies",
	}
	item.Stamp("item-1", time.Now().UTC())

	require.True(t, service.ProcessInventoryUpdate(item, domain.InventoryChangeIncrease))

	entries := storedEntries(store)
	require.Len(t, entries, 1)
	assert.Equal(t, InventoryAccount, entries[0].DebitAccount)
	assert.Equal(t, AccountsPayable, entries[0].CreditAccount)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(500)), "40 x 12.5")

	// The reference is the event id, so a later delivery of the same item
	// posts its own group.
	item.Quantity = 20
	require.True(t, service.ProcessInventoryUpdate(item, domain.InventoryChangeIncrease))
	assert.Len(t, storedEntries(store), 2)
}

func TestProcessInventoryUpdateDecreaseOnlyNotifies(t *testing.T) {
	service, store := newService()

	item := &domain.InventoryItem{
		Name:         "Towels",
		Quantity:     5,
		UnitCost:     12.5,
		ReorderLevel: 10,
	}
	item.Stamp("item-1", time.Now().UTC())

	require.True(t, service.ProcessInventoryUpdate(item, domain.InventoryChangeDecrease))

	assert.Empty(t, storedEntries(store))

	var notifications []domain.ReorderNotification
	require.True(t, store.Get(storage.KeyNotifications, &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "item-1", notifications[0].ItemID)
	assert.Equal(t, "Towels", notifications[0].ItemName)
	assert.Equal(t, 5.0, notifications[0].Quantity)
}

func TestProcessInventoryUpdateAboveReorderLevelDoesNotNotify(t *testing.T) {
	service, store := newService()

	item := &domain.InventoryItem{Name: "Towels", Quantity: 50, UnitCost: 1, ReorderLevel: 10}
	item.Stamp("item-1", time.Now().UTC())

	require.True(t, service.ProcessInventoryUpdate(item, domain.InventoryChangeIncrease))

	var notifications []domain.ReorderNotification
	assert.False(t, store.Get(storage.KeyNotifications, &notifications))
}

func TestReplayPending(t *testing.T) {
	service, store := newService()

	// Record events without posting them, simulating a crash between the
	// queue write and the ledger write.
	sale := saleFixture()
	_, err := service.queue.Record(domain.EventSaleCreated, "sales", sale)
	require.NoError(t, err)

	expense := &domain.Expense{Supplier: "Acme Supplies", Amount: 100, Category: "Utilities", Date: "2024-03-02"}
	expense.Stamp("expense-1", time.Now().UTC())
	_, err = service.queue.Record(domain.EventExpenseCreated, "expenses", expense)
	require.NoError(t, err)

	assert.Empty(t, storedEntries(store))

	applied := service.ReplayPending()

	assert.Equal(t, 2, applied)
	assert.Empty(t, service.queue.DrainUnprocessed())
	assert.Len(t, entriesFor(store, "sale-1"), 2)
	assert.Len(t, entriesFor(store, "expense-1"), 1)

	// A second replay finds nothing to do.
	assert.Equal(t, 0, service.ReplayPending())
}

func TestReplayPendingStopsOnUndecodableEvent(t *testing.T) {
	service, store := newService()

	events := []domain.IntegrationEvent{
		{ID: "bad", Type: domain.EventSaleCreated, Module: "sales", Data: []byte(`{"subtotal":"x"`), Timestamp: time.Now().UTC()},
		{ID: "good", Type: domain.EventExpenseCreated, Module: "expenses", Data: mustMarshal(t, &domain.Expense{
			Meta: domain.Meta{ID: "expense-9"}, Supplier: "Acme", Amount: 10, Category: "Rent", Date: "2024-03-02",
		}), Timestamp: time.Now().UTC()},
	}
	require.True(t, store.Set(storage.KeyEvents, events))

	// Replay halts at the broken event so ordering is preserved.
	assert.Equal(t, 0, service.ReplayPending())
	assert.Empty(t, storedEntries(store))
}

func TestRebuildRollups(t *testing.T) {
	service, store := newService()

	require.True(t, service.ProcessSaleCreated(saleFixture()))

	expense := &domain.Expense{Supplier: "Acme Supplies", Amount: 100, Category: "Utilities", Date: "2024-03-02"}
	expense.Stamp("expense-1", time.Now().UTC())
	require.True(t, service.ProcessExpenseCreated(expense))

	// Wipe the read models, then rebuild them from the event log.
	require.True(t, store.Set(storage.KeyCustomers, map[string]domain.CustomerRollup{}))
	require.True(t, store.Set(storage.KeySuppliers, map[string]domain.SupplierRollup{}))

	customers, suppliers := service.RebuildRollups()
	assert.Equal(t, 1, customers)
	assert.Equal(t, 1, suppliers)

	rollups := map[string]domain.CustomerRollup{}
	require.True(t, store.Get(storage.KeyCustomers, &rollups))
	assert.True(t, rollups["j.doe@example.com"].TotalSales.Equal(decimal.NewFromFloat(112.5)))
}

func TestPostUnknownEventType(t *testing.T) {
	service, _ := newService()

	err := service.post(domain.IntegrationEvent{ID: "x", Type: "SOMETHING_ELSE"})
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
