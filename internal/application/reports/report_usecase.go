// Package reports genera los reportes de inventario, vencimientos y asignaciones,
// sus agregados para gráficos y la exportación a PDF y XLSX.
package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/medinventory-api/internal/domain/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

const (
	topClients = 10
	sheetName  = "Report"
)

// ReportUseCase arma reportes a partir de productos y asignaciones.
type ReportUseCase struct {
	productRepo    repository.ProductRepository
	assignmentRepo repository.AssignmentRepository
	exporters      map[string]Exporter
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso. exporters se indexa por formato (pdf, xlsx).
func NewReportUseCase(
	productRepo repository.ProductRepository,
	assignmentRepo repository.AssignmentRepository,
	exporters map[string]Exporter,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:    productRepo,
		assignmentRepo: assignmentRepo,
		exporters:      exporters,
		now:            time.Now,
	}
}

// Build genera el reporte pedido con sus datos de gráfico.
func (uc *ReportUseCase) Build(ctx context.Context, in dto.ReportRequest) (*dto.Report, error) {
	switch in.Type {
	case dto.ReportInventory:
		return uc.inventoryReport(ctx, in)
	case dto.ReportExpiry:
		return uc.expiryReport(ctx, in)
	case dto.ReportAssignments:
		return uc.assignmentReport(ctx, in)
	}
	return nil, fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, in.Type)
}

// Export genera el reporte y lo convierte al formato indicado.
func (uc *ReportUseCase) Export(ctx context.Context, in dto.ReportRequest, format string) (*dto.ExportFile, error) {
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	report, err := uc.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	content, err := exp.Export(report)
	if err != nil {
		return nil, fmt.Errorf("exportar reporte %s: %w", in.Type, err)
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("%s-report-%s.%s", in.Type, report.GeneratedAt.Format(dto.DateLayout), exp.Extension()),
		ContentType: exp.ContentType(),
		Content:     content,
	}, nil
}

func (uc *ReportUseCase) inventoryReport(ctx context.Context, in dto.ReportRequest) (*dto.Report, error) {
	all, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	r := uc.newReport(dto.ReportInventory, "Inventory Report", in)
	r.Table.Headers = []string{"Product Name", "Category", "Quantity", "Unit", "Expiry Date", "Manufacturer"}
	r.Sheet.Headers = []string{"Product Name", "Category", "Quantity", "Unit", "Manufacturer", "Batch Number", "Expiry Date", "Reorder Level", "Cost Per Unit"}
	for _, p := range all {
		if in.Category != "" && p.Category != in.Category {
			continue
		}
		expiry := dto.FormatDate(p.ExpiryDate)
		r.Table.Rows = append(r.Table.Rows, []string{p.Name, p.Category, strconv.Itoa(p.Quantity), p.Unit, expiry, p.Manufacturer})
		r.Sheet.Rows = append(r.Sheet.Rows, []any{p.Name, p.Category, p.Quantity, p.Unit, p.Manufacturer, p.BatchNumber, expiry, p.ReorderLevel, p.CostPerUnit.InexactFloat64()})
	}
	// El gráfico agrupa todas las categorías, sin el filtro de la tabla.
	r.Chart = CategoryChart(all)
	return r, nil
}

func (uc *ReportUseCase) expiryReport(ctx context.Context, in dto.ReportRequest) (*dto.Report, error) {
	all, err := uc.productRepo.List(ctx, repository.ProductFilter{Category: in.Category})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	products := ExpiringOrExpired(all, now)

	r := uc.newReport(dto.ReportExpiry, "Expiry Report", in)
	r.Table.Headers = []string{"Product Name", "Category", "Quantity", "Unit", "Expiry Date", "Status"}
	r.Sheet.Headers = []string{"Product Name", "Category", "Quantity", "Unit", "Expiry Date", "Days Remaining", "Status", "Batch Number", "Manufacturer"}
	for _, p := range products {
		expiry := dto.FormatDate(p.ExpiryDate)
		days := domaininv.DaysRemaining(p.ExpiryDate, now)
		status, sheetStatus := fmt.Sprintf("%d days", days), "Expiring Soon"
		if domaininv.IsExpired(p.ExpiryDate, now) {
			status, sheetStatus = "Expired", "Expired"
		}
		r.Table.Rows = append(r.Table.Rows, []string{p.Name, p.Category, strconv.Itoa(p.Quantity), p.Unit, expiry, status})
		r.Sheet.Rows = append(r.Sheet.Rows, []any{p.Name, p.Category, p.Quantity, p.Unit, expiry, days, sheetStatus, p.BatchNumber, p.Manufacturer})
	}
	r.Chart = ExpiryByMonthChart(products)
	return r, nil
}

func (uc *ReportUseCase) assignmentReport(ctx context.Context, in dto.ReportRequest) (*dto.Report, error) {
	filter, err := inventory.BuildAssignmentFilter(in.StartDate, in.EndDate, in.ClientID, in.Category)
	if err != nil {
		return nil, err
	}
	list, err := uc.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	r := uc.newReport(dto.ReportAssignments, "Assignment Report", in)
	r.Table.Headers = []string{"Product", "Client", "Quantity", "Unit", "Date", "Assigned By"}
	r.Sheet.Headers = []string{"Product", "Category", "Client", "Client Type", "Quantity", "Unit", "Assigned By", "Date", "Notes"}
	for _, a := range list {
		date := dto.FormatDate(a.CreatedAt)
		r.Table.Rows = append(r.Table.Rows, []string{a.Product.Name, a.Client.Name, strconv.Itoa(a.Quantity), a.Product.Unit, date, a.AssignedByName})
		r.Sheet.Rows = append(r.Sheet.Rows, []any{a.Product.Name, a.Product.Category, a.Client.Name, a.Client.Type, a.Quantity, a.Product.Unit, a.AssignedByName, date, a.Notes})
	}
	r.Chart = TopClientsChart(list)
	return r, nil
}

func (uc *ReportUseCase) newReport(kind, title string, in dto.ReportRequest) *dto.Report {
	r := &dto.Report{
		Type:        kind,
		Title:       title,
		GeneratedAt: uc.now(),
		Table:       dto.ReportTable{Rows: [][]string{}},
		Sheet:       dto.ReportSheet{Name: sheetName},
	}
	if in.Category != "" {
		r.Filters = append(r.Filters, "Category: "+in.Category)
	}
	if kind == dto.ReportAssignments {
		if in.StartDate != "" {
			r.Filters = append(r.Filters, "From: "+in.StartDate)
		}
		if in.EndDate != "" {
			r.Filters = append(r.Filters, "To: "+in.EndDate)
		}
		if in.ClientID != "" {
			r.Filters = append(r.Filters, "Client: "+in.ClientID)
		}
	}
	return r
}

// ExpiringOrExpired filtra productos vencidos o que vencen en 90 días, más próximos primero.
func ExpiringOrExpired(products []*entity.Product, now time.Time) []*entity.Product {
	var out []*entity.Product
	for _, p := range products {
		if domaininv.IsExpired(p.ExpiryDate, now) || domaininv.IsExpiringSoon(p.ExpiryDate, now, domaininv.ReportExpiryWindowDays) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out
}

// CategoryChart cuenta productos y unidades por categoría, en orden de aparición.
func CategoryChart(products []*entity.Product) dto.ChartData {
	var labels []string
	count := map[string]int64{}
	total := map[string]int64{}
	for _, p := range products {
		if _, seen := count[p.Category]; !seen {
			labels = append(labels, p.Category)
		}
		count[p.Category]++
		total[p.Category] += int64(p.Quantity)
	}
	items := make([]int64, len(labels))
	types := make([]int64, len(labels))
	for i, c := range labels {
		items[i] = total[c]
		types[i] = count[c]
	}
	return dto.ChartData{
		Labels: nonNil(labels),
		Datasets: []dto.ChartDataset{
			{Label: "Total Items", Data: items},
			{Label: "Product Types", Data: types},
		},
	}
}

// ExpiryByMonthChart agrupa por mes de vencimiento ("Jan 2025"), en orden cronológico.
func ExpiryByMonthChart(products []*entity.Product) dto.ChartData {
	type bucket struct {
		start time.Time
		n     int64
	}
	buckets := map[string]*bucket{}
	for _, p := range products {
		key := p.ExpiryDate.Format("Jan 2006")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: time.Date(p.ExpiryDate.Year(), p.ExpiryDate.Month(), 1, 0, 0, 0, 0, time.UTC)}
			buckets[key] = b
		}
		b.n++
	}
	labels := make([]string, 0, len(buckets))
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool { return buckets[labels[i]].start.Before(buckets[labels[j]].start) })
	data := make([]int64, len(labels))
	for i, k := range labels {
		data[i] = buckets[k].n
	}
	return dto.ChartData{
		Labels:   labels,
		Datasets: []dto.ChartDataset{{Label: "Expiring Products", Data: data}},
	}
}

// TopClientsChart suma cantidades asignadas por nombre de cliente; top 10 de mayor a menor.
func TopClientsChart(list []*entity.Assignment) dto.ChartData {
	totals := map[string]int64{}
	var names []string
	for _, a := range list {
		if _, ok := totals[a.Client.Name]; !ok {
			names = append(names, a.Client.Name)
		}
		totals[a.Client.Name] += int64(a.Quantity)
	}
	sort.SliceStable(names, func(i, j int) bool { return totals[names[i]] > totals[names[j]] })
	if len(names) > topClients {
		names = names[:topClients]
	}
	data := make([]int64, len(names))
	for i, n := range names {
		data[i] = totals[n]
	}
	return dto.ChartData{
		Labels:   nonNil(names),
		Datasets: []dto.ChartDataset{{Label: "Items Assigned", Data: data}},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
