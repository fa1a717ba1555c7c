// Package bootstrap arma los casos de uso sobre un backend de persistencia
// (PostgreSQL o memoria) y los expone al router HTTP y al worker.
package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/medinventory-api/internal/application/activity"
	appanalytics "github.com/jhoicas/medinventory-api/internal/application/analytics"
	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/application/billing"
	"github.com/jhoicas/medinventory-api/internal/application/clients"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
	"github.com/jhoicas/medinventory-api/internal/application/reports"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/excel"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/medinventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medinventory-api/internal/interfaces/http"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

// Repositories agrupa los repositorios y el TxRunner de un backend.
type Repositories struct {
	Tx          inventory.TxRunner
	Products    repository.ProductRepository
	Clients     repository.ClientRepository
	Pharmacies  repository.PharmacyRepository
	Assignments repository.AssignmentRepository
	Invoices    repository.InvoiceRepository
	Payments    repository.PaymentRepository
	Movements   repository.StockMovementRepository
	Activity    repository.ActivityRepository
	Users       repository.UserRepository
	Stats       repository.StatsRepository
}

// PostgresRepositories repositorios sobre el pool de pgx.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Tx:          postgres.NewTxRunner(pool),
		Products:    postgres.NewProductRepository(pool),
		Clients:     postgres.NewClientRepository(pool),
		Pharmacies:  postgres.NewPharmacyRepository(pool),
		Assignments: postgres.NewAssignmentRepository(pool),
		Invoices:    postgres.NewInvoiceRepository(pool),
		Payments:    postgres.NewPaymentRepository(pool),
		Movements:   postgres.NewStockMovementRepository(pool),
		Activity:    postgres.NewActivityRepository(pool),
		Users:       postgres.NewUserRepository(pool),
		Stats:       postgres.NewStatsRepository(pool),
	}
}

// MemoryRepositories repositorios en memoria (desarrollo y tests).
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Tx:          memory.NewTxRunner(s),
		Products:    memory.NewProductRepo(s),
		Clients:     memory.NewClientRepo(s),
		Pharmacies:  memory.NewPharmacyRepo(s),
		Assignments: memory.NewAssignmentRepo(s),
		Invoices:    memory.NewInvoiceRepo(s),
		Payments:    memory.NewPaymentRepo(s),
		Movements:   memory.NewStockMovementRepo(s),
		Activity:    memory.NewActivityRepo(s),
		Users:       memory.NewUserRepo(s),
		Stats:       memory.NewStatsRepo(s),
	}
}

// Options parámetros de los casos de uso.
type Options struct {
	JWT               auth.JWTConfig
	ExpiryWarningDays int
	Cache             appanalytics.SummaryCache // nil desactiva el cache del dashboard
	CacheTTL          time.Duration
	PDFIssuer         string
	Logger            *logger.Logger
}

// Services casos de uso listos para usar.
type Services struct {
	Activity      *activity.ActivityUseCase
	Auth          *auth.AuthUseCase
	Products      *inventory.ProductUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Assignments   *inventory.AssignmentUseCase
	Clients       *clients.ClientUseCase
	Pharmacies    *billing.PharmacyUseCase
	Invoices      *billing.InvoiceUseCase
	Payments      *billing.PaymentUseCase
	InvoicePDF    *billing.PDFUseCase
	Reports       *reports.ReportUseCase
	Dashboard     *appanalytics.DashboardUseCase
}

// NewServices construye todos los casos de uso sobre r.
func NewServices(r Repositories, opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	act := activity.NewActivityUseCase(r.Activity, log)
	stock := inventory.NewStockUseCase(r.Tx, r.Movements)

	return &Services{
		Activity:      act,
		Auth:          auth.NewAuthUseCase(r.Users, act, opts.JWT),
		Products:      inventory.NewProductUseCase(r.Products, act, opts.ExpiryWarningDays),
		Stock:         stock,
		Replenishment: inventory.NewReplenishmentUseCase(r.Products, opts.ExpiryWarningDays),
		Assignments:   inventory.NewAssignmentUseCase(r.Tx, stock, r.Assignments, r.Clients, act),
		Clients:       clients.NewClientUseCase(r.Clients, act),
		Pharmacies:    billing.NewPharmacyUseCase(r.Pharmacies, act),
		Invoices:      billing.NewInvoiceUseCase(r.Tx, stock, r.Pharmacies, r.Invoices, act, log),
		Payments:      billing.NewPaymentUseCase(r.Tx, r.Payments, act),
		InvoicePDF:    billing.NewPDFUseCase(r.Invoices, infrapdf.NewMarotoPDFGenerator(opts.PDFIssuer)),
		Reports: reports.NewReportUseCase(r.Products, r.Assignments, map[string]reports.Exporter{
			dto.ExportPDF:  infrapdf.NewReportExporter(),
			dto.ExportXLSX: excel.NewExporter(),
		}),
		Dashboard: appanalytics.NewDashboardUseCase(r.Stats, r.Assignments, r.Activity, opts.Cache, opts.CacheTTL, log),
	}
}

// RouterDeps adapta los servicios a las dependencias del router HTTP.
func (s *Services) RouterDeps(jwtSecret string) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:          s.Auth,
		ProductUC:       s.Products,
		StockUC:         s.Stock,
		ReplenishmentUC: s.Replenishment,
		AssignmentUC:    s.Assignments,
		ClientUC:        s.Clients,
		PharmacyUC:      s.Pharmacies,
		InvoiceUC:       s.Invoices,
		PaymentUC:       s.Payments,
		InvoicePDF:      s.InvoicePDF,
		ReportUC:        s.Reports,
		DashboardUC:     s.Dashboard,
		ActivityUC:      s.Activity,
		JWTSecret:       jwtSecret,
	}
}
