package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/reports"
)

// ReportHandler endpoints de reportes de ventas e inventario.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen general
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/reportes/resumen [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailySeries godoc
// @Summary      Ventas diarias
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        dias   query  int     false  "Ventana en días"  default(30)
// @Success      200    {object}  dto.DailySeriesResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas-diarias [get]
func (h *ReportHandler) DailySeries(c *fiber.Ctx) error {
	var in dto.DailySeriesRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.DailySeries(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        limit                query  int     false  "Cantidad"  default(5)
// @Param        metric               query  string  false  "unidades | monto"
// @Param        order                query  string  false  "desc | asc"
// @Param        start                query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end                  query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        year                 query  int     false  "Año"
// @Param        month                query  int     false  "Mes (1-12)"
// @Param        season               query  string  false  "otono | invierno | primavera | verano"
// @Param        canal                query  string  false  "tienda | online"
// @Param        categoria            query  string  false  "ID de categoría"
// @Param        min_precio_unitario  query  string  false  "Precio unitario mínimo"
// @Param        max_precio_unitario  query  string  false  "Precio unitario máximo"
// @Param        min_monto            query  string  false  "Monto mínimo por producto"
// @Param        max_monto            query  string  false  "Monto máximo por producto"
// @Param        exclude              query  string  false  "Nombres a excluir, separados por coma"
// @Success      200                  {object}  dto.TopProductsResponse
// @Failure      400                  {object}  dto.ErrorResponse
// @Router       /api/reportes/productos-top [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	var in dto.TopProductsRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.TopProducts(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PaymentMix godoc
// @Summary      Ventas por tipo de pago
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GroupTotalDTO
// @Router       /api/reportes/tipos-pago [get]
func (h *ReportHandler) PaymentMix(c *fiber.Ctx) error {
	out, err := h.uc.PaymentMix(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        umbral  query  int  false  "Umbral de unidades (0 = solo agotados)"  default(5)
// @Param        limit   query  int  false  "Cantidad"            default(20)
// @Success      200     {array}  dto.LowStockDTO
// @Router       /api/reportes/stock-bajo [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	var in dto.LowStockRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.LowStock(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Forecast godoc
// @Summary      Predicción de ventas por producto
// @Description  Promedio de unidades vendidas en el mismo día de la semana durante las últimas semanas.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "Fecha objetivo (YYYY-MM-DD), por defecto mañana"
// @Success      200    {object}  dto.ForecastResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reportes/prediccion [get]
func (h *ReportHandler) Forecast(c *fiber.Ctx) error {
	var in dto.ForecastRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Forecast(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      plain
// @Param        formato  query  string  false  "pdf | excel | txt"  default(pdf)
// @Success      200      {file}    binary
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/reportes/exportar [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	format := c.Query("formato", reports.FormatPDF)
	file, err := h.uc.Export(c.Context(), format)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	return c.Send(file.Content)
}
