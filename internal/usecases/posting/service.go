// Package posting derives double-entry ledger postings, rollups and reorder
// notifications from domain mutations, exactly once per reference. Every
// posting group is composed in memory and persisted with a single write of
// the entries collection, so a crash can never leave half a group behind; the
// event queue replays anything the ledger has not yet seen.
package posting

import (
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/queue"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnknownEventType = errors.New("posting: unknown event type")
	ErrNotPersisted     = errors.New("posting: entries could not be persisted")
)

// Integrator is the public posting surface consumed by collaborators. All
// methods are synchronous, return success booleans and never panic across
// this boundary.
type Integrator interface {
	ProcessSaleCreated(sale *domain.Sale) bool
	ProcessExpenseCreated(expense *domain.Expense) bool
	ProcessPayrollCreated(staff *domain.Staff) bool
	ProcessInventoryUpdate(item *domain.InventoryItem, changeType string) bool

	// ReplayPending re-posts events left unprocessed by a crash, strictly in
	// recorded order, and returns how many were applied. Called at startup
	// before new events are accepted.
	ReplayPending() int

	// RebuildRollups recomputes the customer and supplier rollups from the
	// processed event log. Rollups are read models, never the source of truth.
	RebuildRollups() (customers, suppliers int)
}

type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	queue *queue.Queue
}

func NewService(store *storage.Adapter, q *queue.Queue) Integrator {
	return &Service{store: store, queue: q}
}

func (s *Service) ProcessSaleCreated(sale *domain.Sale) bool {
	return s.dispatch(domain.EventSaleCreated, "sales", sale)
}

func (s *Service) ProcessExpenseCreated(expense *domain.Expense) bool {
	return s.dispatch(domain.EventExpenseCreated, "expenses", expense)
}

func (s *Service) ProcessPayrollCreated(staff *domain.Staff) bool {
	return s.dispatch(domain.EventPayrollCreated, "payroll", staff)
}

func (s *Service) ProcessInventoryUpdate(item *domain.InventoryItem, changeType string) bool {
	change := domain.InventoryChange{Item: item, ChangeType: changeType}
	return s.dispatch(domain.EventInventoryUpdated, "inventory", change)
}

func (s *Service) ReplayPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for _, event := range s.queue.DrainUnprocessed() {
		if err := s.post(event); err != nil {
			// Stop at the first failure so events never apply out of order.
			log.L.WithError(err).WithFields(log.Fields{
				"event_id": event.ID,
				"type":     event.Type,
			}).Warn("replay stopped, event stays pending")
			break
		}
		if !s.queue.MarkProcessed(event.ID) {
			log.L.WithField("event_id", event.ID).Warn("could not mark replayed event processed")
			break
		}
		applied++
	}

	if applied > 0 {
		log.L.WithField("applied", applied).Info("replayed pending integration events")
	}
	return applied
}

// dispatch records the event first, then posts it. If posting fails the event
// stays unprocessed and the next replay retries it; the caller still sees
// false so the UI can warn.
func (s *Service) dispatch(eventType, module string, payload interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.queue.Record(eventType, module, payload)
	if err != nil {
		log.L.WithError(err).WithField("type", eventType).Error("could not record integration event")
		return false
	}

	if err := s.post(*event); err != nil {
		log.L.WithError(err).WithFields(log.Fields{
			"event_id": event.ID,
			"type":     eventType,
		}).Warn("posting failed, event left unprocessed for replay")
		return false
	}

	if !s.queue.MarkProcessed(event.ID) {
		// The posting itself is reference-deduplicated, so a replay of this
		// event is a safe no-op.
		log.L.WithField("event_id", event.ID).Warn("could not mark event processed")
	}
	return true
}

func (s *Service) post(event domain.IntegrationEvent) error {
	switch event.Type {
	case domain.EventSaleCreated:
		var sale domain.Sale
		if err := json.Unmarshal(event.Data, &sale); err != nil {
			return errors.Wrap(err, "decoding sale event")
		}
		return s.postSale(&sale)

	case domain.EventExpenseCreated:
		var expense domain.Expense
		if err := json.Unmarshal(event.Data, &expense); err != nil {
			return errors.Wrap(err, "decoding expense event")
		}
		return s.postExpense(&expense)

	case domain.EventPayrollCreated:
		var staff domain.Staff
		if err := json.Unmarshal(event.Data, &staff); err != nil {
			return errors.Wrap(err, "decoding payroll event")
		}
		return s.postPayroll(&staff)

	case domain.EventInventoryUpdated:
		var change domain.InventoryChange
		if err := json.Unmarshal(event.Data, &change); err != nil {
			return errors.Wrap(err, "decoding inventory event")
		}
		// The event id is the idempotency reference here: the same item is
		// legitimately updated many times, but each movement posts once.
		return s.postInventory(&change, event.ID)
	}
	return errors.Wrapf(ErrUnknownEventType, "%s", event.Type)
}

func (s *Service) postSale(sale *domain.Sale) error {
	entries := s.entries()
	if hasPostingFor(entries, sale.ID) {
		return nil
	}

	group := []domain.AccountingEntry{
		s.entry(sale.Date, "Sale - "+sale.CustomerName, AccountsReceivable, SalesRevenue, sale.Subtotal, sale.ID, "sales"),
	}

	// Each tax leg debits receivables and credits its own payable account, so
	// the group stays balanced per leg.
	taxes := []struct {
		amount  float64
		account string
		label   string
	}{
		{sale.VATAmount, VATPayable, "VAT"},
		{sale.NHILAmount, NHILPayable, "NHIL"},
		{sale.GETFundAmount, GETFundPayable, "GETFund"},
	}
	for _, tax := range taxes {
		if tax.amount <= 0 {
			continue
		}
		group = append(group, s.entry(sale.Date, tax.label+" on sale - "+sale.CustomerName,
			AccountsReceivable, tax.account, tax.amount, sale.ID, "sales"))
	}

	if err := s.appendGroup(entries, group); err != nil {
		return err
	}

	s.upsertCustomerRollup(sale)
	return nil
}

func (s *Service) postExpense(expense *domain.Expense) error {
	entries := s.entries()
	if hasPostingFor(entries, expense.ID) {
		return nil
	}

	group := []domain.AccountingEntry{
		s.entry(expense.Date, "Expense - "+expense.Supplier,
			expenseAccount(expense.Category), AccountsPayable, expense.Amount, expense.ID, "expenses"),
	}
	if expense.InputVAT > 0 {
		group = append(group, s.entry(expense.Date, "Input VAT - "+expense.Supplier,
			VATReceivable, AccountsPayable, expense.InputVAT, expense.ID, "expenses"))
	}

	if err := s.appendGroup(entries, group); err != nil {
		return err
	}

	s.upsertSupplierRollup(expense)
	return nil
}

func (s *Service) postPayroll(staff *domain.Staff) error {
	entries := s.entries()
	if hasPostingFor(entries, staff.ID) {
		return nil
	}

	today := time.Now().UTC().Format(time.DateOnly)
	group := []domain.AccountingEntry{
		s.entry(today, "Payroll - "+staff.Name, SalaryExpense, SalariesPayable, staff.BasicSalary, staff.ID, "payroll"),
	}

	contributions := []struct {
		amount  float64
		account string
		label   string
	}{
		{staff.SSNITEmployee, SSNITPayable, "SSNIT (employee)"},
		{staff.SSNITEmployer, SSNITPayable, "SSNIT (employer)"},
		{staff.PAYETax, PAYEPayable, "PAYE"},
	}
	for _, c := range contributions {
		if c.amount <= 0 {
			continue
		}
		group = append(group, s.entry(today, c.label+" - "+staff.Name,
			SalariesPayable, c.account, c.amount, staff.ID, "payroll"))
	}

	return s.appendGroup(entries, group)
}

func (s *Service) postInventory(change *domain.InventoryChange, reference string) error {
	item := change.Item
	if item == nil {
		return errors.New("posting: inventory event without item")
	}

	entries := s.entries()
	if !hasPostingFor(entries, reference) && change.ChangeType == domain.InventoryChangeIncrease {
		value := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitCost))
		amount, _ := value.Float64()
		group := []domain.AccountingEntry{
			s.entry(time.Now().UTC().Format(time.DateOnly), "Stock received - "+item.Name,
				InventoryAccount, AccountsPayable, amount, reference, "inventory"),
		}
		if err := s.appendGroup(entries, group); err != nil {
			return err
		}
	}

	if item.ReorderLevel > 0 && item.Quantity <= item.ReorderLevel {
		s.notifyReorder(item)
	}
	return nil
}

func (s *Service) entry(date, description, debit, credit string, amount float64, reference, module string) domain.AccountingEntry {
	return domain.AccountingEntry{
		ID:            uuid.NewString(),
		Date:          date,
		Description:   description,
		DebitAccount:  debit,
		CreditAccount: credit,
		Amount:        decimal.NewFromFloat(amount),
		Reference:     reference,
		Module:        module,
		CreatedAt:     time.Now().UTC(),
	}
}

// appendGroup persists the whole posting group with one write. Zero-amount
// legs are dropped first: every stored entry carries a positive amount.
func (s *Service) appendGroup(entries, group []domain.AccountingEntry) error {
	kept := make([]domain.AccountingEntry, 0, len(group))
	for _, e := range group {
		if e.Amount.IsPositive() {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	if !s.store.Set(storage.KeyEntries, append(entries, kept...)) {
		return ErrNotPersisted
	}
	return nil
}

func (s *Service) entries() []domain.AccountingEntry {
	var entries []domain.AccountingEntry
	s.store.Get(storage.KeyEntries, &entries)
	return entries
}

func hasPostingFor(entries []domain.AccountingEntry, reference string) bool {
	for _, e := range entries {
		if e.Reference == reference {
			return true
		}
	}
	return false
}

func (s *Service) upsertCustomerRollup(sale *domain.Sale) {
	if sale.CustomerEmail == "" {
		return
	}

	rollups := make(map[string]*domain.CustomerRollup)
	s.store.Get(storage.KeyCustomers, &rollups)

	rollup, ok := rollups[sale.CustomerEmail]
	if !ok {
		rollup = &domain.CustomerRollup{Email: sale.CustomerEmail, Name: sale.CustomerName}
		rollups[sale.CustomerEmail] = rollup
	}
	rollup.TotalSales = rollup.TotalSales.Add(decimal.NewFromFloat(sale.TotalAmount))
	rollup.SaleCount++
	rollup.LastTransactionDate = sale.Date

	if !s.store.Set(storage.KeyCustomers, rollups) {
		log.L.WithField("customer", sale.CustomerEmail).Warn("customer rollup not persisted")
	}
}

func (s *Service) upsertSupplierRollup(expense *domain.Expense) {
	if expense.Supplier == "" {
		return
	}

	rollups := make(map[string]*domain.SupplierRollup)
	s.store.Get(storage.KeySuppliers, &rollups)

	rollup, ok := rollups[expense.Supplier]
	if !ok {
		rollup = &domain.SupplierRollup{Name: expense.Supplier}
		rollups[expense.Supplier] = rollup
	}
	rollup.TotalSpent = rollup.TotalSpent.Add(decimal.NewFromFloat(expense.Amount))
	rollup.TransactionCount++
	rollup.LastTransactionDate = expense.Date

	if !s.store.Set(storage.KeySuppliers, rollups) {
		log.L.WithField("supplier", expense.Supplier).Warn("supplier rollup not persisted")
	}
}

func (s *Service) RebuildRollups() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make(map[string]*domain.CustomerRollup)
	suppliers := make(map[string]*domain.SupplierRollup)

	for _, event := range s.queueEvents() {
		if !event.Processed {
			continue
		}
		switch event.Type {
		case domain.EventSaleCreated:
			var sale domain.Sale
			if err := json.Unmarshal(event.Data, &sale); err != nil || sale.CustomerEmail == "" {
				continue
			}
			rollup, ok := customers[sale.CustomerEmail]
			if !ok {
				rollup = &domain.CustomerRollup{Email: sale.CustomerEmail, Name: sale.CustomerName}
				customers[sale.CustomerEmail] = rollup
			}
			rollup.TotalSales = rollup.TotalSales.Add(decimal.NewFromFloat(sale.TotalAmount))
			rollup.SaleCount++
			rollup.LastTransactionDate = sale.Date

		case domain.EventExpenseCreated:
			var expense domain.Expense
			if err := json.Unmarshal(event.Data, &expense); err != nil || expense.Supplier == "" {
				continue
			}
			rollup, ok := suppliers[expense.Supplier]
			if !ok {
				rollup = &domain.SupplierRollup{Name: expense.Supplier}
				suppliers[expense.Supplier] = rollup
			}
			rollup.TotalSpent = rollup.TotalSpent.Add(decimal.NewFromFloat(expense.Amount))
			rollup.TransactionCount++
			rollup.LastTransactionDate = expense.Date
		}
	}

	if !s.store.Set(storage.KeyCustomers, customers) || !s.store.Set(storage.KeySuppliers, suppliers) {
		log.L.Warn("rebuilt rollups could not be fully persisted")
	}
	return len(customers), len(suppliers)
}

func (s *Service) queueEvents() []domain.IntegrationEvent {
	var events []domain.IntegrationEvent
	s.store.Get(storage.KeyEvents, &events)
	return events
}

func (s *Service) notifyReorder(item *domain.InventoryItem) {
	var notifications []domain.ReorderNotification
	s.store.Get(storage.KeyNotifications, &notifications)

	notifications = append(notifications, domain.ReorderNotification{
		ID:           uuid.NewString(),
		ItemID:       item.ID,
		ItemName:     item.Name,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		CreatedAt:    time.Now().UTC(),
	})

	if !s.store.Set(storage.KeyNotifications, notifications) {
		log.L.WithField("item", item.Name).Warn("reorder notification not persisted")
	}
}
