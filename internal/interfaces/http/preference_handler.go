package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

// PreferenceHandler maneja las preferencias de visualización y el tema.
type PreferenceHandler struct {
	uc *usecase.PreferenceUseCase
}

// NewPreferenceHandler construye el handler.
func NewPreferenceHandler(uc *usecase.PreferenceUseCase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

// Get GET /api/preferences
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get())
}

// Update PUT /api/preferences — reemplaza el set completo.
func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	var in entity.Preferences
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return h.prefError(c, err)
	}
	return c.JSON(updated)
}

// Reorder POST /api/preferences/widgets/reorder
func (h *PreferenceHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.ReorderWidgets(c.Context(), in.From, in.To)
	if err != nil {
		return h.prefError(c, err)
	}
	return c.JSON(updated)
}

// ToggleSize POST /api/preferences/widgets/:id/size — alterna full⇄half.
func (h *PreferenceHandler) ToggleSize(c *fiber.Ctx) error {
	updated, err := h.uc.ToggleWidgetSize(c.Context(), c.Params("id"))
	if err != nil {
		return h.prefError(c, err)
	}
	return c.JSON(updated)
}

// GetTheme GET /api/preferences/theme
func (h *PreferenceHandler) GetTheme(c *fiber.Ctx) error {
	return c.JSON(dto.ThemeDTO{Theme: h.uc.Theme()})
}

// PutTheme PUT /api/preferences/theme
func (h *PreferenceHandler) PutTheme(c *fiber.Ctx) error {
	var in dto.ThemeDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetTheme(c.Context(), in.Theme); err != nil {
		return h.prefError(c, err)
	}
	return c.JSON(dto.ThemeDTO{Theme: h.uc.Theme()})
}

func (h *PreferenceHandler) prefError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros fuera de rango"})
	case errors.Is(err, domain.ErrNotReady):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_LOADED", Message: "los ajustes aún no se han cargado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
