package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
)

// Loader estado recargable desde el almacén (*catalog.Manager, *sales.Manager).
type Loader interface {
	LoadAll(ctx context.Context) error
}

// DashboardHandler maneja el dashboard del administrador, el reporte PDF y la recarga de estado.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
	loaders   []Loader
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, reports *analytics.ReportUseCase, loaders ...Loader) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, loaders: loaders}
}

// GetSummary godoc
// @Summary      Resumen del día
// @Description  Total, ventas por servicio y por empleado, 5 ventas recientes y los 7 días seleccionables.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "día (YYYY-MM-DD), por defecto hoy"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF GET /api/dashboard/report.pdf?date=
func (h *DashboardHandler) ReportPDF(c *fiber.Ctx) error {
	b, name, err := h.reports.PDF(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	return c.Send(b)
}

// Refresh godoc
// @Summary      Recargar datos desde el almacén
// @Tags         dashboard
// @Security     Bearer
// @Success      204
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	g, ctx := errgroup.WithContext(c.UserContext())
	for _, l := range h.loaders {
		l := l
		g.Go(func() error { return l.LoadAll(ctx) })
	}
	if err := g.Wait(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
