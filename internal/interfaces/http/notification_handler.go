package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/application/notify"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// NotificationHandler recibe reportes de empleados (errores y quejas) para el administrador.
type NotificationHandler struct {
	notifier Notifier
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(n Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: n}
}

// ReportError godoc
// @Summary      Reportar un error al administrador
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "Empleado y mensaje"
// @Success      202   {object}  dto.AcceptedResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/notifications/error [post]
func (h *NotificationHandler) ReportError(c *fiber.Ctx) error {
	return h.report(c, entity.NotificationError)
}

// ReportComplaint POST /api/notifications/complaint
func (h *NotificationHandler) ReportComplaint(c *fiber.Ctx) error {
	return h.report(c, entity.NotificationComplaint)
}

// report la entrega es asíncrona; la respuesta no espera a los canales.
func (h *NotificationHandler) report(c *fiber.Ctx, t entity.NotificationType) error {
	var in dto.ReportRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	h.notifier.Notify(c.UserContext(), notify.FromReport(t, in.EmployeeName, in.Message))
	return c.Status(fiber.StatusAccepted).JSON(dto.AcceptedResponse{Status: "queued"})
}
