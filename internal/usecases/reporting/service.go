// Package reporting answers the read-only summary questions the report pages
// ask. Every function is a deterministic fold over current repository
// contents for the requested range; nothing here mutates or caches.
package reporting

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/utils"
)

var ErrInvalidRange = errors.New("reporting: invalid date range")

// DateRange is an inclusive [Start, End] range of YYYY-MM-DD dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the answer to one GenerateSummary call.
type Summary struct {
	Start              string  `json:"start"`
	End                string  `json:"end"`
	TotalRevenue       float64 `json:"totalRevenue"`
	SaleCount          int     `json:"saleCount"`
	TotalExpenses      float64 `json:"totalExpenses"`
	ExpenseCount       int     `json:"expenseCount"`
	NetIncome          float64 `json:"netIncome"`
	InventoryValuation float64 `json:"inventoryValuation"`
	LowStockCount      int     `json:"lowStockCount"`
	StaffCost          float64 `json:"staffCost"`
}

// Reporter is the read-side service consumed by the report pages.
type Reporter interface {
	GenerateSummary(dateRange DateRange) (*Summary, error)
	EntriesByReference(reference string) []domain.AccountingEntry
}

type Service struct {
	sales     *repository.Collection[*domain.Sale]
	expenses  *repository.Collection[*domain.Expense]
	staff     *repository.Collection[*domain.Staff]
	inventory *repository.Collection[*domain.InventoryItem]
	store     *storage.Adapter
}

func NewService(
	sales *repository.Collection[*domain.Sale],
	expenses *repository.Collection[*domain.Expense],
	staff *repository.Collection[*domain.Staff],
	inventory *repository.Collection[*domain.InventoryItem],
	store *storage.Adapter,
) Reporter {
	return &Service{
		sales:     sales,
		expenses:  expenses,
		staff:     staff,
		inventory: inventory,
		store:     store,
	}
}

func (s *Service) GenerateSummary(dateRange DateRange) (*Summary, error) {
	start, end, err := parseRange(dateRange)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	saleCount := 0
	for _, sale := range s.sales.GetAll() {
		if !inRange(sale.Date, start, end) {
			continue
		}
		revenue = revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
		saleCount++
	}

	spent := decimal.Zero
	expenseCount := 0
	for _, expense := range s.expenses.GetAll() {
		if !inRange(expense.Date, start, end) {
			continue
		}
		spent = spent.Add(decimal.NewFromFloat(expense.Amount))
		expenseCount++
	}

	valuation := decimal.Zero
	lowStock := 0
	for _, item := range s.inventory.GetAll() {
		valuation = valuation.Add(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitCost)))
		if item.ReorderLevel > 0 && item.Quantity <= item.ReorderLevel {
			lowStock++
		}
	}

	staffCost := decimal.Zero
	for _, member := range s.staff.GetAll() {
		if !member.Active {
			continue
		}
		staffCost = staffCost.Add(decimal.NewFromFloat(member.BasicSalary)).
			Add(decimal.NewFromFloat(member.SSNITEmployer))
	}

	net := revenue.Sub(spent)

	return &Summary{
		Start:              dateRange.Start,
		End:                dateRange.End,
		TotalRevenue:       round(revenue),
		SaleCount:          saleCount,
		TotalExpenses:      round(spent),
		ExpenseCount:       expenseCount,
		NetIncome:          round(net),
		InventoryValuation: round(valuation),
		LowStockCount:      lowStock,
		StaffCost:          round(staffCost),
	}, nil
}

// EntriesByReference returns the posting group recorded for one domain
// record, for drill-down views.
func (s *Service) EntriesByReference(reference string) []domain.AccountingEntry {
	var entries []domain.AccountingEntry
	s.store.Get(storage.KeyEntries, &entries)

	var group []domain.AccountingEntry
	for _, entry := range entries {
		if entry.Reference == reference {
			group = append(group, entry)
		}
	}
	return group
}

func parseRange(dateRange DateRange) (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, dateRange.Start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidRange, "start")
	}
	end, err := time.Parse(time.DateOnly, dateRange.End)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidRange, "end")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidRange, "end before start")
	}
	return start, end, nil
}

func inRange(date string, start, end time.Time) bool {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return utils.RoundWithTwoDecimalPlace(f)
}
