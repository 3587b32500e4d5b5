package usecase

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
	"github.com/jhoicas/crm-dashboard-api/internal/application/query"
	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

// Patrón mínimo de email, igual de laxo que la validación del formulario
// original: algo@algo.algo.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// CustomerUseCase orquesta el Record Store, el Query Engine y el set de
// selección. La selección vive aquí: se poda en Delete, se limpia en
// BulkDelete y el "seleccionar todo" se acota a la vista filtrada.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	csv  CustomerCSV

	mu        sync.Mutex
	selection map[string]struct{}

	now func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, csv CustomerCSV) *CustomerUseCase {
	return &CustomerUseCase{
		repo:      repo,
		csv:       csv,
		selection: map[string]struct{}{},
		now:       time.Now,
	}
}

// List aplica los filtros en orden fijo y pagina el resultado. Total es el
// tamaño del subconjunto filtrado.
func (uc *CustomerUseCase) List(f query.FilterState, page dto.PageRequest) *dto.CustomerListResponse {
	page.DefaultPage()
	filtered := query.Apply(uc.repo.List(), f)
	total := len(filtered)

	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	items := make([]dto.CustomerResponse, 0, end-start)
	for _, c := range filtered[start:end] {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}

// Create da de alta un cliente: id nuevo, último contacto "ahora", insertado
// al frente del store.
func (uc *CustomerUseCase) Create(in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	c := &entity.Customer{
		ID:            id,
		Name:          in.Name,
		Avatar:        avatarURL(id),
		Email:         in.Email,
		Phone:         in.Phone,
		Tags:          append([]string(nil), in.Tags...),
		LastContacted: entity.FormatDate(uc.now()),
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Update reemplaza los campos mutables. Si el id no existe es un no-op
// silencioso y devuelve nil, nil.
func (uc *CustomerUseCase) Update(id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(id, repository.CustomerUpdate{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Tags:  in.Tags,
	}); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Delete elimina el registro y lo poda del set de selección si estaba
// seleccionado (aunque esté fuera de la vista filtrada).
func (uc *CustomerUseCase) Delete(id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.mu.Lock()
	delete(uc.selection, id)
	uc.mu.Unlock()
	return nil
}

// BulkDelete elimina los ids dados y limpia la selección intersectada.
func (uc *CustomerUseCase) BulkDelete(ids []string) (int, error) {
	removed, err := uc.repo.BulkDelete(ids)
	if err != nil {
		return 0, err
	}
	uc.mu.Lock()
	for _, id := range ids {
		delete(uc.selection, id)
	}
	uc.mu.Unlock()
	return removed, nil
}

// Selection snapshot ordenado del set de selección.
func (uc *CustomerUseCase) Selection() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]string, 0, len(uc.selection))
	for id := range uc.selection {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SetSelection reemplaza el set de selección. Ids que no existen en el store
// se descartan.
func (uc *CustomerUseCase) SetSelection(ids []string) []string {
	present := map[string]struct{}{}
	for _, c := range uc.repo.List() {
		present[c.ID] = struct{}{}
	}
	uc.mu.Lock()
	uc.selection = map[string]struct{}{}
	for _, id := range ids {
		if _, ok := present[id]; ok {
			uc.selection[id] = struct{}{}
		}
	}
	uc.mu.Unlock()
	return uc.Selection()
}

// SelectAllFiltered selecciona todos los ids de la vista filtrada actual
// (semántica de "select all": acotado al subconjunto visible).
func (uc *CustomerUseCase) SelectAllFiltered(f query.FilterState) []string {
	filtered := query.Apply(uc.repo.List(), f)
	uc.mu.Lock()
	uc.selection = map[string]struct{}{}
	for _, c := range filtered {
		uc.selection[c.ID] = struct{}{}
	}
	uc.mu.Unlock()
	return uc.Selection()
}

// ClearSelection vacía el set de selección.
func (uc *CustomerUseCase) ClearSelection() {
	uc.mu.Lock()
	uc.selection = map[string]struct{}{}
	uc.mu.Unlock()
}

// ImportCSV importa un lote de clientes desde un CSV. Campos ausentes se
// sintetizan (nunca quedan vacíos) y el lote entero se inserta al frente,
// atómico. Cero filas válidas es un resultado distinto (ErrNothingImported),
// no un éxito silencioso.
func (uc *CustomerUseCase) ImportCSV(r io.Reader) (int, error) {
	rows, err := uc.csv.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("importar CSV: %w", err)
	}
	if len(rows) == 0 {
		return 0, domain.ErrNothingImported
	}

	now := uc.now()
	batch := make([]*entity.Customer, 0, len(rows))
	for i, row := range rows {
		id := uuid.New().String()
		name := row.Name
		if name == "" {
			name = fmt.Sprintf("Imported Contact %d", i+1)
		}
		email := row.Email
		if email == "" {
			email = fmt.Sprintf("imported.%s@example.com", id[:8])
		}
		phone := row.Phone
		if phone == "" {
			phone = fmt.Sprintf("+57 300 000 %04d", i+1)
		}
		tags := row.Tags
		if len(tags) == 0 {
			tags = []string{entity.TagLead}
		}
		batch = append(batch, &entity.Customer{
			ID:            id,
			Name:          name,
			Avatar:        avatarURL(id),
			Email:         email,
			Phone:         phone,
			Tags:          tags,
			LastContacted: entity.FormatDate(now),
		})
	}
	if err := uc.repo.PrependBatch(batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// ExportSelected escribe el CSV de los registros seleccionados, en orden del
// store. ErrEmptySelection si no hay nada seleccionado.
func (uc *CustomerUseCase) ExportSelected(w io.Writer) (int, error) {
	uc.mu.Lock()
	sel := make(map[string]struct{}, len(uc.selection))
	for id := range uc.selection {
		sel[id] = struct{}{}
	}
	uc.mu.Unlock()
	if len(sel) == 0 {
		return 0, domain.ErrEmptySelection
	}

	var selected []*entity.Customer
	for _, c := range uc.repo.List() {
		if _, ok := sel[c.ID]; ok {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return 0, domain.ErrEmptySelection
	}
	if err := uc.csv.Write(w, selected); err != nil {
		return 0, fmt.Errorf("exportar CSV: %w", err)
	}
	return len(selected), nil
}

func validateCustomer(in dto.CustomerRequest) error {
	if in.Name == "" || in.Phone == "" {
		return domain.ErrInvalidInput
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.ErrInvalidInput
	}
	return nil
}

func avatarURL(id string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id)
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Avatar:        c.Avatar,
		Email:         c.Email,
		Phone:         c.Phone,
		Tags:          append([]string(nil), c.Tags...),
		LastContacted: c.LastContacted,
	}
}
