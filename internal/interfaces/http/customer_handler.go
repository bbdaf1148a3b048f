package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// Notifier recibe avisos para el administrador (notify.Sink).
type Notifier interface {
	Notify(ctx context.Context, n entity.Notification)
}

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	catalog  *catalog.Manager
	notifier Notifier
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(m *catalog.Manager, notifier Notifier) *CustomerHandler {
	return &CustomerHandler{catalog: m, notifier: notifier}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(dto.MapSlice(h.catalog.ListCustomers(), dto.ToCustomerResponse)))
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	cu, err := h.catalog.AddCustomer(c.UserContext(), entity.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCustomerResponse(cu))
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.catalog.UpdateCustomer(c.UserContext(), c.Params("id"), catalog.CustomerPatch{Name: in.Name, Email: in.Email, Phone: in.Phone})
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente")
	}
	return c.JSON(dto.ToCustomerResponse(*out))
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.RemoveCustomer(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Message godoc
// @Summary      Enviar mensaje a un cliente
// @Description  Registra la intención de contacto como aviso de tipo message; la entrega es asíncrona.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cliente"
// @Param        body  body  dto.CustomerMessageRequest  true  "Mensaje"
// @Success      202   {object}  dto.AcceptedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/message [post]
func (h *CustomerHandler) Message(c *fiber.Ctx) error {
	var in dto.CustomerMessageRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	cu, ok := h.catalog.GetCustomer(c.Params("id"))
	if !ok {
		return notFound(c, "cliente")
	}
	h.notifier.Notify(c.UserContext(), entity.Notification{
		Type:         entity.NotificationMessage,
		EmployeeName: GetUsername(c),
		Recipient:    cu.Name,
		Message:      in.Message,
	})
	return c.Status(fiber.StatusAccepted).JSON(dto.AcceptedResponse{Status: "queued"})
}
