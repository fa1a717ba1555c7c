package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/reports"
)

// ReportHandler reportes de inventario, vencimientos y asignaciones.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Generar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type        path   string  true   "inventory | expiry | assignments"
// @Param        category    query  string  false  "Categoría"
// @Param        client_id   query  string  false  "Cliente (assignments)"
// @Param        start_date  query  string  false  "YYYY-MM-DD (assignments)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (assignments)"
// @Success      200  {object}  dto.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	in, err := reportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Build(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type    path   string  true   "inventory | expiry | assignments"
// @Param        format  query  string  false  "pdf | xlsx"  default(pdf)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{type}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	in, err := reportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), in, c.Query("format", dto.ExportPDF))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}

func reportRequest(c *fiber.Ctx) (dto.ReportRequest, error) {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return in, badRequest("INVALID_QUERY", "parámetros de consulta inválidos")
	}
	in.Type = c.Params("type")
	return in, validateStruct(&in)
}
