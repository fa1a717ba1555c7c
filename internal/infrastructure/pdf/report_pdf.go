package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/reports"
)

// ReportExporter exporta reportes a PDF (tabla resumida).
type ReportExporter struct{}

var _ reports.Exporter = (*ReportExporter)(nil)

func NewReportExporter() *ReportExporter { return &ReportExporter{} }

func (e *ReportExporter) ContentType() string { return "application/pdf" }
func (e *ReportExporter) Extension() string   { return dto.ExportPDF }

// Export arma título, fecha de generación, filtros y la tabla del reporte.
func (e *ReportExporter) Export(report *dto.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(16).Add(col.New(12).Add(
		text.New(report.Title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
		text.New("Generated on: "+report.GeneratedAt.UTC().Format("2006-01-02 15:04"), props.Text{Size: 8, Color: colorGray, Top: 9}),
	)))
	if len(report.Filters) > 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(strings.Join(report.Filters, "   |   "), props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := columnSizes(len(report.Table.Headers))
	m.AddRows(tableRow(report.Table.Headers, sizes, true))
	for _, r := range report.Table.Rows {
		m.AddRows(tableRow(r, sizes, false))
	}
	if len(report.Table.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No records found.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func tableRow(cells []string, sizes []int, header bool) core.Row {
	style := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
	if header {
		style.Style = fontstyle.Bold
		style.Color = colorPrimary
	}
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(size).Add(text.New(v, style)))
	}
	return row.New(7).Add(cols...)
}

// columnSizes reparte la grilla de 12 columnas; el sobrante va a la primera.
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > 12 {
		n = 12
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = 12 / n
	}
	sizes[0] += 12 % n
	return sizes
}
