package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
)

// InventoryHandler movimientos y consultas de stock.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	queries   *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, queries *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  entrada, salida, ajuste o transferencia entre sucursales. La transferencia genera dos movimientos.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Datos del movimiento"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockByBranch godoc
// @Summary      Stock de una sucursal
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        branch_id  path   string  true   "ID de la sucursal"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {array}   dto.StockResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventario/stock/{branch_id} [get]
func (h *InventoryHandler) StockByBranch(c *fiber.Ctx) error {
	out, err := h.queries.ListByBranch(c.Context(), c.Params("branch_id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementsByVariant godoc
// @Summary      Historial de movimientos de una variante
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la variante"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/inventario/variantes/{id}/movimientos [get]
func (h *InventoryHandler) MovementsByVariant(c *fiber.Ctx) error {
	out, err := h.queries.ListMovements(c.Context(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
