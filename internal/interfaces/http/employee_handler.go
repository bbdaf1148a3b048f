package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// EmployeeHandler maneja las peticiones HTTP de empleados.
type EmployeeHandler struct {
	catalog *catalog.Manager
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(m *catalog.Manager) *EmployeeHandler {
	return &EmployeeHandler{catalog: m}
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.EmployeeResponse]
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(dto.MapSlice(h.catalog.ListEmployees(), dto.ToEmployeeResponse)))
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	e, err := h.catalog.AddEmployee(c.UserContext(), entity.Employee{Name: in.Name, Email: in.Email, Phone: in.Phone, Photo: in.Photo})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToEmployeeResponse(e))
}

// Update PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.catalog.UpdateEmployee(c.UserContext(), c.Params("id"), catalog.EmployeePatch{
		Name: in.Name, Email: in.Email, Phone: in.Phone, Photo: in.Photo,
	})
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "empleado")
	}
	return c.JSON(dto.ToEmployeeResponse(*out))
}

// Delete DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.RemoveEmployee(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
