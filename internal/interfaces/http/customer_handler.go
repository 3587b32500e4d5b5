package http

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
	"github.com/jhoicas/crm-dashboard-api/internal/application/query"
	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/csvio"
	"github.com/jhoicas/crm-dashboard-api/pkg/metrics"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc      *usecase.CustomerUseCase
	metrics *metrics.Metrics
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, m *metrics.Metrics) *CustomerHandler {
	return &CustomerHandler{uc: uc, metrics: m}
}

// filterFromQuery arma el FilterState desde los query params del listado.
func filterFromQuery(c *fiber.Ctx) query.FilterState {
	return query.FilterState{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
}

// List GET /api/customers?search=&tag=&from=&to=&limit=10&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	resp := h.uc.List(filterFromQuery(c), dto.PageRequest{Limit: limit, Offset: offset})
	return c.JSON(resp)
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email válido y phone son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email válido y phone son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if customer == nil {
		// id inexistente: la edición es un no-op silencioso
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.metrics.RecordsDeleted.Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDelete POST /api/customers/bulk-delete
func (h *CustomerHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := h.uc.BulkDelete(in.IDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.metrics.RecordsDeleted.Add(float64(deleted))
	return c.JSON(dto.BulkDeleteResponse{Deleted: deleted})
}

// GetSelection GET /api/customers/selection
func (h *CustomerHandler) GetSelection(c *fiber.Ctx) error {
	return c.JSON(dto.SelectionResponse{IDs: h.uc.Selection()})
}

// PutSelection PUT /api/customers/selection
func (h *CustomerHandler) PutSelection(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(dto.SelectionResponse{IDs: h.uc.SetSelection(in.IDs)})
}

// SelectAll POST /api/customers/selection/all — selecciona la vista filtrada
// actual (mismos query params que el listado).
func (h *CustomerHandler) SelectAll(c *fiber.Ctx) error {
	return c.JSON(dto.SelectionResponse{IDs: h.uc.SelectAllFiltered(filterFromQuery(c))})
}

// ClearSelection DELETE /api/customers/selection
func (h *CustomerHandler) ClearSelection(c *fiber.Ctx) error {
	h.uc.ClearSelection()
	return c.SendStatus(fiber.StatusNoContent)
}

// Import POST /api/customers/import (multipart, campo "file")
func (h *CustomerHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el archivo CSV en el campo 'file'"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	imported, err := h.uc.ImportCSV(f)
	if err != nil {
		if errors.Is(err, domain.ErrNothingImported) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOTHING_IMPORTED", Message: "el archivo no contiene filas importables"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	h.metrics.RecordsImported.Add(float64(imported))
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResponse{Imported: imported})
}

// Export GET /api/customers/export — CSV de los registros seleccionados.
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	exported, err := h.uc.ExportSelected(&buf)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_SELECTION", Message: "no hay registros seleccionados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.metrics.RecordsExported.Add(float64(exported))

	filename := csvio.ExportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
