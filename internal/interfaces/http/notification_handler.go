package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/notify"
)

// NotificationHandler envío de notificaciones push.
type NotificationHandler struct {
	uc *notify.BroadcastUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notify.BroadcastUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// Global godoc
// @Summary      Notificación global
// @Description  Envía una notificación push a todos los usuarios con token, opcionalmente filtrados por rol.
// @Tags         notificaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GlobalNotificationRequest  true  "titulo, mensaje, roles"
// @Success      200   {object}  dto.GlobalNotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/notificaciones/global [post]
func (h *NotificationHandler) Global(c *fiber.Ctx) error {
	var in dto.GlobalNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Send(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
