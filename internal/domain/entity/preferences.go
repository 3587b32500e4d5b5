package entity

// IDs de los widgets del dashboard (bloque de stats + tres gráficos).
const (
	WidgetStats = "stats"
	WidgetLine  = "line"
	WidgetBar   = "bar"
	WidgetPie   = "pie"
)

// Tamaños posibles de un widget.
const (
	WidgetSizeFull = "full"
	WidgetSizeHalf = "half"
)

// Temas de la aplicación (se persisten bajo su propia clave, como string plano).
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// TagAll valor centinela del filtro de etiqueta: sin filtro.
const TagAll = "All"

// DateRange rango de fechas inclusive en días calendario (YYYY-MM-DD).
// Un extremo vacío significa sin cota por ese lado.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Preferences preferencias de visualización del usuario. Se serializan como
// un único blob JSON bajo una clave del almacén persistente; un valor
// guardado incompatible degrada campo a campo a los defaults.
type Preferences struct {
	RowsPerPage     int               `json:"rows_per_page"`
	ActiveTag       string            `json:"active_tag"`
	HiddenColumns   []string          `json:"hidden_columns"`
	DateRange       DateRange         `json:"date_range"`
	ChartVisibility map[string]bool   `json:"chart_visibility"`
	ChartTheme      string            `json:"chart_theme"` // paleta nombrada o "custom"
	CustomColor     string            `json:"custom_color"`
	WidgetOrder     []string          `json:"widget_order"`
	WidgetSizes     map[string]string `json:"widget_sizes"`
}

// DefaultPreferences devuelve las preferencias por defecto de una sesión nueva.
func DefaultPreferences() Preferences {
	return Preferences{
		RowsPerPage:   10,
		ActiveTag:     TagAll,
		HiddenColumns: []string{},
		DateRange:     DateRange{},
		ChartVisibility: map[string]bool{
			WidgetLine: true,
			WidgetBar:  true,
			WidgetPie:  true,
		},
		ChartTheme:  "default",
		CustomColor: "#4f46e5",
		WidgetOrder: []string{WidgetStats, WidgetLine, WidgetBar, WidgetPie},
		WidgetSizes: map[string]string{
			WidgetStats: WidgetSizeFull,
			WidgetLine:  WidgetSizeHalf,
			WidgetBar:   WidgetSizeHalf,
			WidgetPie:   WidgetSizeHalf,
		},
	}
}
