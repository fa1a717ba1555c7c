// Package excel exporta reportes a hojas de cálculo XLSX con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/reports"
)

const chartSheet = "Chart Data"

// Exporter implementa reports.Exporter para XLSX.
// La primera hoja lleva la vista completa del reporte; la segunda los agregados del gráfico.
type Exporter struct{}

var _ reports.Exporter = (*Exporter)(nil)

func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *Exporter) Extension() string { return dto.ExportXLSX }

func (e *Exporter) Export(report *dto.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("excel: reporte nulo")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := report.Sheet.Name
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("excel: nombre de hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := writeTable(f, sheet, report.Sheet.Headers, report.Sheet.Rows, bold); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(chartSheet); err != nil {
		return nil, fmt.Errorf("excel: hoja de gráfico: %w", err)
	}
	headers, rows := chartTable(report.Chart)
	if err := writeTable(f, chartSheet, headers, rows, bold); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	if len(headers) > 0 {
		header := make([]any, len(headers))
		for i, h := range headers {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("excel: encabezado: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return fmt.Errorf("excel: celdas: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("excel: estilo de encabezado: %w", err)
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return fmt.Errorf("excel: celdas: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("excel: ancho de columnas: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel: celdas: %w", err)
		}
		values := r
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}
	return nil
}

// chartTable aplana ChartData: una fila por etiqueta, una columna por serie.
func chartTable(c dto.ChartData) ([]string, [][]any) {
	headers := []string{"Label"}
	for _, ds := range c.Datasets {
		headers = append(headers, ds.Label)
	}
	rows := make([][]any, 0, len(c.Labels))
	for i, label := range c.Labels {
		r := []any{label}
		for _, ds := range c.Datasets {
			var v int64
			if i < len(ds.Data) {
				v = ds.Data[i]
			}
			r = append(r, v)
		}
		rows = append(rows, r)
	}
	return headers, rows
}
