package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	appName string
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, appName string) *DashboardHandler {
	return &DashboardHandler{uc: uc, appName: appName}
}

// GetSummary devuelve las métricas de cabecera del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total, leads, partners, recent_contacts).
// Se calcula sobre el store completo, independiente del filtro de lista.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}

// GetTags GET /api/dashboard/tags — top-5 etiquetas por frecuencia.
func (h *DashboardHandler) GetTags(c *fiber.Ctx) error {
	return c.JSON(h.uc.TagDistribution())
}

// GetActivity GET /api/dashboard/activity — buckets mensuales cronológicos.
func (h *DashboardHandler) GetActivity(c *fiber.Ctx) error {
	return c.JSON(h.uc.ActivityByMonth())
}

// GetReportPDF GET /api/dashboard/report.pdf — informe con las tres
// tabulaciones.
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ReportPDF(c.Context(), h.appName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("dashboard-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
