package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/sales"
)

// SalesHandler checkout POS/online, confirmación de pago y consultas de ventas.
type SalesHandler struct {
	checkout *checkout.UseCase
	sales    *sales.UseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(checkoutUC *checkout.UseCase, salesUC *sales.UseCase) *SalesHandler {
	return &SalesHandler{checkout: checkoutUC, sales: salesUC}
}

// CheckoutPOS godoc
// @Summary      Venta en tienda (POS)
// @Description  Crea la venta, descuenta stock de la sucursal y la liquida salvo pago qr.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/ventas/pos [post]
func (h *SalesHandler) CheckoutPOS(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.checkout.CheckoutPOS(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckoutOnline godoc
// @Summary      Venta online
// @Description  Crea la venta pendiente de pago.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/online [post]
func (h *SalesHandler) CheckoutOnline(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.checkout.CheckoutOnline(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfirmPayment godoc
// @Summary      Confirmar pago
// @Description  Marca la venta como completada y pagada. Idempotente.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.ConfirmPaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/confirmar-pago [post]
func (h *SalesHandler) ConfirmPayment(c *fiber.Ctx) error {
	out, err := h.checkout.ConfirmPayment(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Un usuario con rol cliente solo ve sus propias ventas.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/ventas [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.sales.List(c.Context(), GetIdentity(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de venta
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	out, err := h.sales.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
