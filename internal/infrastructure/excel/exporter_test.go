package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
)

func TestExport(t *testing.T) {
	report := &dto.Report{
		Type:        dto.ReportInventory,
		Title:       "Inventory Report",
		GeneratedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Sheet: dto.ReportSheet{
			Name:    "Report",
			Headers: []string{"Product Name", "Category", "Quantity", "Cost Per Unit"},
			Rows: [][]any{
				{"Paracetamol", "Medicines", 10, 2.5},
				{"Gauze", "Supplies", 4, 0.75},
			},
		},
		Chart: dto.ChartData{
			Labels: []string{"Medicines", "Supplies"},
			Datasets: []dto.ChartDataset{
				{Label: "Total Quantity", Data: []int64{10, 4}},
				{Label: "Product Count", Data: []int64{1}},
			},
		},
	}

	out, err := NewExporter().Export(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Report", chartSheet}, f.GetSheetList())

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product Name", "Category", "Quantity", "Cost Per Unit"}, rows[0])
	assert.Equal(t, []string{"Paracetamol", "Medicines", "10", "2.5"}, rows[1])

	chart, err := f.GetRows(chartSheet)
	require.NoError(t, err)
	require.Len(t, chart, 3)
	assert.Equal(t, []string{"Label", "Total Quantity", "Product Count"}, chart[0])
	assert.Equal(t, []string{"Supplies", "4", "0"}, chart[2], "serie incompleta se completa con cero")
}

func TestExport_Nil(t *testing.T) {
	_, err := NewExporter().Export(nil)
	assert.Error(t, err)
	assert.Equal(t, "xlsx", NewExporter().Extension())
}
