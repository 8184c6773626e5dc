package handler

import (
	"net/http"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/api/handler/router"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/archiving"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/posting"
	"github.com/mwumpini/WIP-HMS-sub001/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sales(sales *repository.Collection[*domain.Sale], integrator posting.Integrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(sales),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(sales, integrator),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodPut,
			Handler: UpdateSale(sales),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(sales),
		},
	}
}

func Expenses(expenses *repository.Collection[*domain.Expense], integrator posting.Integrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/expenses",
			Method:  http.MethodGet,
			Handler: ListExpenses(expenses),
		},
		{
			Path:    "/v1/expenses",
			Method:  http.MethodPost,
			Handler: CreateExpense(expenses, integrator),
		},
		{
			Path:    "/v1/expenses/:id",
			Method:  http.MethodPut,
			Handler: UpdateExpense(expenses),
		},
		{
			Path:    "/v1/expenses/:id",
			Method:  http.MethodDelete,
			Handler: DeleteExpense(expenses),
		},
	}
}

func Staff(staff *repository.Collection[*domain.Staff], integrator posting.Integrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/staff",
			Method:  http.MethodGet,
			Handler: ListStaff(staff),
		},
		{
			Path:    "/v1/staff",
			Method:  http.MethodPost,
			Handler: CreateStaff(staff),
		},
		{
			Path:    "/v1/staff/:id",
			Method:  http.MethodPut,
			Handler: UpdateStaff(staff),
		},
		{
			Path:    "/v1/staff/:id",
			Method:  http.MethodDelete,
			Handler: DeleteStaff(staff),
		},
		{
			Path:    "/v1/payroll/run",
			Method:  http.MethodPost,
			Handler: RunPayroll(staff, integrator),
		},
	}
}

func Inventory(inventory *repository.Collection[*domain.InventoryItem], integrator posting.Integrator, store *storage.Adapter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/inventory",
			Method:  http.MethodGet,
			Handler: ListInventory(inventory),
		},
		{
			Path:    "/v1/inventory",
			Method:  http.MethodPost,
			Handler: CreateInventoryItem(inventory, integrator),
		},
		{
			Path:    "/v1/inventory/:id",
			Method:  http.MethodPut,
			Handler: UpdateInventoryItem(inventory, integrator),
		},
		{
			Path:    "/v1/inventory/:id",
			Method:  http.MethodDelete,
			Handler: DeleteInventoryItem(inventory),
		},
		{
			Path:    "/v1/notifications/reorder",
			Method:  http.MethodGet,
			Handler: ListReorderNotifications(store),
		},
	}
}

func Users(users *repository.Users) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/users",
			Method:  http.MethodGet,
			Handler: ListUsers(users),
		},
		{
			Path:    "/v1/users",
			Method:  http.MethodPost,
			Handler: RegisterUser(users),
		},
		{
			Path:    "/v1/users/:id/deactivate",
			Method:  http.MethodPost,
			Handler: DeactivateUser(users),
		},
	}
}

func Profiles(profiles *repository.Profiles) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/profile",
			Method:  http.MethodGet,
			Handler: GetUserProfile(profiles),
		},
		{
			Path:    "/v1/profile",
			Method:  http.MethodPut,
			Handler: SetUserProfile(profiles),
		},
		{
			Path:    "/v1/company",
			Method:  http.MethodGet,
			Handler: GetCompanyProfile(profiles),
		},
		{
			Path:    "/v1/company",
			Method:  http.MethodPut,
			Handler: SetCompanyProfile(profiles),
		},
	}
}

func Reports(reporter reporting.Reporter, store *storage.Adapter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/summary",
			Method:  http.MethodGet,
			Handler: GetSummaryReport(reporter),
		},
		{
			Path:    "/v1/ledger/:reference",
			Method:  http.MethodGet,
			Handler: GetLedgerEntries(reporter),
		},
		{
			Path:    "/v1/customers",
			Method:  http.MethodGet,
			Handler: ListCustomerRollups(store),
		},
		{
			Path:    "/v1/suppliers",
			Method:  http.MethodGet,
			Handler: ListSupplierRollups(store),
		},
	}
}

func Backup(archiver archiving.Archiver) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/backup",
			Method:  http.MethodGet,
			Handler: ExportBackup(archiver),
		},
		{
			Path:    "/v1/backup/restore",
			Method:  http.MethodPost,
			Handler: RestoreBackup(archiver),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
