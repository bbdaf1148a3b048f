package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// ServiceHandler maneja las peticiones HTTP de servicios del catálogo.
type ServiceHandler struct {
	catalog *catalog.Manager
}

// NewServiceHandler construye el handler.
func NewServiceHandler(m *catalog.Manager) *ServiceHandler {
	return &ServiceHandler{catalog: m}
}

// List godoc
// @Summary      Listar servicios
// @Description  q filtra por nombre sin distinguir mayúsculas.
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.ServiceResponse]
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(dto.MapSlice(h.catalog.SearchServices(c.Query("q")), dto.ToServiceResponse)))
}

// Create godoc
// @Summary      Crear servicio
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Nombre y precio"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	s, err := h.catalog.AddService(c.UserContext(), entity.Service{Name: in.Name, Price: in.Price})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToServiceResponse(s))
}

// Update PUT /api/services/:id
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.catalog.UpdateService(c.UserContext(), c.Params("id"), catalog.ServicePatch{Name: in.Name, Price: in.Price})
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "servicio")
	}
	return c.JSON(dto.ToServiceResponse(*out))
}

// Delete DELETE /api/services/:id
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.RemoveService(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
