// Package analytics contiene el resumen del dashboard: contadores de inventario,
// clientes, facturación y la actividad reciente.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
	domaininv "github.com/jhoicas/medinventory-api/internal/domain/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/jhoicas/medinventory-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentItems = 5 // asignaciones y actividades recientes del widget
	summaryCacheKey      = "dashboard:summary"
)

// SummaryCache guarda el resumen serializado por un TTL corto.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: StatsRepository (conteos read-only) más los listados recientes de
// asignaciones y actividad.
type DashboardUseCase struct {
	statsRepo      repository.StatsRepository
	assignmentRepo repository.AssignmentRepository
	activityRepo   repository.ActivityRepository
	cache          SummaryCache
	cacheTTL       time.Duration
	log            *logger.Logger
	now            func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil o ttl 0 para desactivar el cache.
func NewDashboardUseCase(
	statsRepo repository.StatsRepository,
	assignmentRepo repository.AssignmentRepository,
	activityRepo repository.ActivityRepository,
	cache SummaryCache,
	cacheTTL time.Duration,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		statsRepo:      statsRepo,
		assignmentRepo: assignmentRepo,
		activityRepo:   activityRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		log:            log,
		now:            time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO. Las consultas corren en paralelo;
// el primer error cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if cached, ok := uc.fromCache(ctx); ok {
		return cached, nil
	}

	now := uc.now()
	until := now.AddDate(0, 0, domaininv.ReportExpiryWindowDays)

	var (
		out         dto.DashboardSummaryDTO
		outstanding decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	count := func(name string, dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("productos", &out.TotalProducts, uc.statsRepo.CountProducts)
	count("bajo stock", &out.LowStockItems, uc.statsRepo.CountLowStock)
	count("clientes", &out.TotalClients, uc.statsRepo.CountClients)
	count("usuarios activos", &out.ActiveUsers, uc.statsRepo.CountActiveUsers)
	count("facturas", &out.TotalInvoices, uc.statsRepo.CountInvoices)
	count("por vencer", &out.ExpiringItems, func(ctx context.Context) (int, error) {
		return uc.statsRepo.CountExpiring(ctx, now, until)
	})
	g.Go(func() error {
		n, amount, err := uc.statsRepo.PendingPayments(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: pagos pendientes: %w", err)
		}
		out.PendingPayments, outstanding = n, amount
		return nil
	})
	g.Go(func() error {
		list, err := uc.assignmentRepo.List(gctx, repository.AssignmentFilter{Limit: dashboardRecentItems})
		if err != nil {
			return fmt.Errorf("dashboard: asignaciones recientes: %w", err)
		}
		out.RecentAssignments = inventory.ToAssignmentResponses(list)
		return nil
	})
	g.Go(func() error {
		logs, err := uc.activityRepo.List(gctx, repository.ActivityFilter{Limit: dashboardRecentItems})
		if err != nil {
			return fmt.Errorf("dashboard: actividad reciente: %w", err)
		}
		out.RecentActivities = activity.ToResponses(logs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.OutstandingAmount = outstanding.Round(2)

	uc.toCache(ctx, &out)
	return &out, nil
}

func (uc *DashboardUseCase) fromCache(ctx context.Context) (*dto.DashboardSummaryDTO, bool) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := uc.cache.Get(ctx, summaryCacheKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: lectura de cache fallida")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var out dto.DashboardSummaryDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (uc *DashboardUseCase) toCache(ctx context.Context, out *dto.DashboardSummaryDTO) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, summaryCacheKey, raw, uc.cacheTTL); err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: escritura de cache fallida")
	}
}
