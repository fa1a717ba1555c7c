package reports

import "github.com/jhoicas/medinventory-api/internal/application/dto"

// Exporter convierte un reporte generado a un formato de archivo (PDF, XLSX).
type Exporter interface {
	Export(report *dto.Report) ([]byte, error)
	ContentType() string
	Extension() string
}
