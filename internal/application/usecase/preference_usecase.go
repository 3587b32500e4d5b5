package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

// PreferenceUseCase implementa el Preference Store: carga única al arrancar
// con recuperación campo a campo, guardado del blob completo en cada cambio,
// y las operaciones de widgets (reordenar, alternar tamaño).
//
// El guardado está bloqueado hasta que Load termina: evita que un estado por
// defecto pise un valor persistido aún no leído.
type PreferenceUseCase struct {
	repo repository.SettingsRepository

	mu      sync.Mutex
	loaded  bool
	current entity.Preferences
	theme   string
}

// NewPreferenceUseCase construye el caso de uso.
func NewPreferenceUseCase(repo repository.SettingsRepository) *PreferenceUseCase {
	return &PreferenceUseCase{
		repo:    repo,
		current: entity.DefaultPreferences(),
		theme:   entity.ThemeLight,
	}
}

// Load lee las preferencias y el tema del almacén. Se ejecuta exactamente una
// vez al arrancar, antes de permitir guardados. Clave ausente o valor
// corrupto degradan a defaults; campos individuales rotos se defaultean de
// forma independiente (best effort). El error devuelto es informativo: la
// carga siempre deja un estado usable.
func (uc *PreferenceUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.loaded {
		return nil
	}
	uc.loaded = true

	var firstErr error
	if data, err := uc.repo.Get(ctx, repository.SettingsKeyPreferences); err != nil {
		firstErr = fmt.Errorf("cargar preferencias: %w", err)
	} else if data != nil {
		uc.current = decodePreferences(data)
	}

	if data, err := uc.repo.Get(ctx, repository.SettingsKeyTheme); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("cargar tema: %w", err)
		}
	} else if data != nil {
		var theme string
		if json.Unmarshal(data, &theme) == nil && (theme == entity.ThemeLight || theme == entity.ThemeDark) {
			uc.theme = theme
		}
	}
	return firstErr
}

// Get devuelve las preferencias actuales.
func (uc *PreferenceUseCase) Get() entity.Preferences {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return clonePreferences(uc.current)
}

// Update reemplaza el set completo de preferencias y lo persiste.
func (uc *PreferenceUseCase) Update(ctx context.Context, p entity.Preferences) (entity.Preferences, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.loaded {
		return entity.Preferences{}, domain.ErrNotReady
	}
	uc.current = normalizePreferences(p)
	if err := uc.save(ctx); err != nil {
		return entity.Preferences{}, err
	}
	return clonePreferences(uc.current), nil
}

// ReorderWidgets mueve el widget en from a la posición to: se quita de from y
// se reinserta en to, desplazando los intermedios (list-splice).
func (uc *PreferenceUseCase) ReorderWidgets(ctx context.Context, from, to int) (entity.Preferences, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.loaded {
		return entity.Preferences{}, domain.ErrNotReady
	}
	order := uc.current.WidgetOrder
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return entity.Preferences{}, domain.ErrInvalidInput
	}
	moved := append([]string(nil), order...)
	item := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append([]string{item}, moved[to:]...)...)
	uc.current.WidgetOrder = moved
	if err := uc.save(ctx); err != nil {
		return entity.Preferences{}, err
	}
	return clonePreferences(uc.current), nil
}

// ToggleWidgetSize alterna el tamaño del widget (full⇄half). Un widget sin
// tamaño registrado pasa a full, igual que el comportamiento original.
func (uc *PreferenceUseCase) ToggleWidgetSize(ctx context.Context, widgetID string) (entity.Preferences, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.loaded {
		return entity.Preferences{}, domain.ErrNotReady
	}
	if uc.current.WidgetSizes == nil {
		uc.current.WidgetSizes = map[string]string{}
	}
	if uc.current.WidgetSizes[widgetID] == entity.WidgetSizeFull {
		uc.current.WidgetSizes[widgetID] = entity.WidgetSizeHalf
	} else {
		uc.current.WidgetSizes[widgetID] = entity.WidgetSizeFull
	}
	if err := uc.save(ctx); err != nil {
		return entity.Preferences{}, err
	}
	return clonePreferences(uc.current), nil
}

// Theme devuelve el tema actual ("light" | "dark").
func (uc *PreferenceUseCase) Theme() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.theme
}

// SetTheme persiste el tema bajo su propia clave, como string plano.
func (uc *PreferenceUseCase) SetTheme(ctx context.Context, theme string) error {
	if theme != entity.ThemeLight && theme != entity.ThemeDark {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.loaded {
		return domain.ErrNotReady
	}
	uc.theme = theme
	data, _ := json.Marshal(theme)
	if err := uc.repo.Put(ctx, repository.SettingsKeyTheme, data); err != nil {
		return fmt.Errorf("guardar tema: %w", err)
	}
	return nil
}

// save serializa el set completo bajo la misma clave (last-write-wins).
// Llamar con uc.mu tomado.
func (uc *PreferenceUseCase) save(ctx context.Context) error {
	data, err := json.Marshal(uc.current)
	if err != nil {
		return fmt.Errorf("serializar preferencias: %w", err)
	}
	if err := uc.repo.Put(ctx, repository.SettingsKeyPreferences, data); err != nil {
		return fmt.Errorf("guardar preferencias: %w", err)
	}
	return nil
}

// decodePreferences decodifica el blob con recuperación campo a campo: cada
// campo roto cae a su default sin bloquear la carga de los demás.
func decodePreferences(data []byte) entity.Preferences {
	out := entity.DefaultPreferences()
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return out
	}

	if v, ok := raw["rows_per_page"]; ok {
		var n int
		if json.Unmarshal(v, &n) == nil && n > 0 {
			out.RowsPerPage = n
		}
	}
	if v, ok := raw["active_tag"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			out.ActiveTag = s
		}
	}
	if v, ok := raw["hidden_columns"]; ok {
		var cols []string
		if json.Unmarshal(v, &cols) == nil && cols != nil {
			out.HiddenColumns = cols
		}
	}
	if v, ok := raw["date_range"]; ok {
		var dr entity.DateRange
		if json.Unmarshal(v, &dr) == nil {
			out.DateRange = dr
		}
	}
	if v, ok := raw["chart_visibility"]; ok {
		var m map[string]bool
		if json.Unmarshal(v, &m) == nil && m != nil {
			out.ChartVisibility = m
		}
	}
	if v, ok := raw["chart_theme"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			out.ChartTheme = s
		}
	}
	if v, ok := raw["custom_color"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			out.CustomColor = s
		}
	}
	if v, ok := raw["widget_order"]; ok {
		var order []string
		if json.Unmarshal(v, &order) == nil && len(order) > 0 {
			out.WidgetOrder = order
		}
	}
	if v, ok := raw["widget_sizes"]; ok {
		var sizes map[string]string
		if json.Unmarshal(v, &sizes) == nil && sizes != nil {
			out.WidgetSizes = sizes
		}
	}
	return out
}

// normalizePreferences evita mapas/slices nil en el estado persistido.
func normalizePreferences(p entity.Preferences) entity.Preferences {
	def := entity.DefaultPreferences()
	if p.RowsPerPage <= 0 {
		p.RowsPerPage = def.RowsPerPage
	}
	if p.ActiveTag == "" {
		p.ActiveTag = def.ActiveTag
	}
	if p.HiddenColumns == nil {
		p.HiddenColumns = []string{}
	}
	if p.ChartVisibility == nil {
		p.ChartVisibility = def.ChartVisibility
	}
	if p.ChartTheme == "" {
		p.ChartTheme = def.ChartTheme
	}
	if len(p.WidgetOrder) == 0 {
		p.WidgetOrder = def.WidgetOrder
	}
	if p.WidgetSizes == nil {
		p.WidgetSizes = def.WidgetSizes
	}
	return p
}

func clonePreferences(p entity.Preferences) entity.Preferences {
	cp := p
	cp.HiddenColumns = append([]string(nil), p.HiddenColumns...)
	cp.WidgetOrder = append([]string(nil), p.WidgetOrder...)
	cp.ChartVisibility = make(map[string]bool, len(p.ChartVisibility))
	for k, v := range p.ChartVisibility {
		cp.ChartVisibility[k] = v
	}
	cp.WidgetSizes = make(map[string]string, len(p.WidgetSizes))
	for k, v := range p.WidgetSizes {
		cp.WidgetSizes[k] = v
	}
	return cp
}
