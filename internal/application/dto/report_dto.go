package dto

import "time"

// Tipos de reporte.
const (
	ReportInventory   = "inventory"
	ReportExpiry      = "expiry"
	ReportAssignments = "assignments"
)

// Formatos de exportación.
const (
	ExportPDF  = "pdf"
	ExportXLSX = "xlsx"
)

// ReportRequest parámetros de GET /api/reports/:type.
// EndDate incluye el día completo (hasta 23:59:59).
type ReportRequest struct {
	Type      string `params:"type" validate:"required,oneof=inventory expiry assignments"`
	Category  string `query:"category"`
	ClientID  string `query:"client_id" validate:"omitempty,uuid"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ReportTable vista tabular resumida (PDF).
type ReportTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ReportSheet vista completa para hoja de cálculo; las celdas conservan su tipo.
type ReportSheet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// ChartDataset serie de un gráfico.
type ChartDataset struct {
	Label string  `json:"label"`
	Data  []int64 `json:"data"`
}

// ChartData datos agregados para gráficos.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Report reporte generado listo para responder o exportar.
type Report struct {
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	GeneratedAt time.Time   `json:"generated_at"`
	Filters     []string    `json:"filters,omitempty"` // descripción legible de filtros aplicados
	Table       ReportTable `json:"table"`
	Sheet       ReportSheet `json:"-"`
	Chart       ChartData   `json:"chart"`
}

// ExportFile archivo exportado.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
