package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/application/sales"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	sales     *sales.Manager
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(m *sales.Manager, dashboard *analytics.DashboardUseCase, reports *analytics.ReportUseCase) *SaleHandler {
	return &SaleHandler{sales: m, dashboard: dashboard, reports: reports}
}

// Record godoc
// @Summary      Registrar venta
// @Description  El monto es el precio vigente del servicio; la fecha la asigna el servidor.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Servicio, empleado y cliente opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	s, err := h.sales.RecordSale(c.UserContext(), sales.RecordSaleInput{
		ServiceID:       in.ServiceID,
		EmployeeName:    in.EmployeeName,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(s))
}

// List godoc
// @Summary      Listar ventas
// @Description  Más reciente primero. date (YYYY-MM-DD, UTC) filtra por día; limit acota la cantidad.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        date   query  string  false  "día"
// @Param        limit  query  int     false  "máximo de filas"
// @Success      200  {object}  dto.ListResponse[dto.SaleResponse]
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.ListRequest
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	var list []entity.Sale
	if q.Date != "" {
		day, err := h.dashboard.ParseDay(q.Date)
		if err != nil {
			return respondError(c, err)
		}
		list = h.sales.ListByDay(day, q.Limit)
	} else {
		list = h.sales.List()
		if q.Limit > 0 && len(list) > q.Limit {
			list = list[:q.Limit]
		}
	}
	return c.JSON(dto.NewList(dto.MapSlice(list, h.toResponse)))
}

// Update PUT /api/sales/:id (admin). La fecha no se modifica.
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.sales.Update(c.UserContext(), c.Params("id"), sales.Patch{
		Service:         in.Service,
		Amount:          in.Amount,
		EmployeeName:    in.EmployeeName,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
	})
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "venta")
	}
	return c.JSON(h.toResponse(*out))
}

// Delete DELETE /api/sales/:id (admin)
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.sales.Remove(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportXLSX godoc
// @Summary      Exportar ventas del día
// @Tags         sales
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        date  query  string  false  "día (YYYY-MM-DD), por defecto hoy"
// @Success      200
// @Router       /api/sales/export.xlsx [get]
func (h *SaleHandler) ExportXLSX(c *fiber.Ctx) error {
	b, name, err := h.reports.XLSX(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(b)
}

func (h *SaleHandler) toResponse(s entity.Sale) dto.SaleResponse {
	return dto.ToSaleResponse(s, h.sales.ServiceName(s))
}
