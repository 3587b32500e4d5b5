package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Se calcula sobre el Record Store completo, nunca sobre el subconjunto
// filtrado: el dashboard resume la población entera.
type DashboardSummaryDTO struct {
	Total          int `json:"total"`           // registros en el store
	Leads          int `json:"leads"`           // registros con etiqueta Lead
	Partners       int `json:"partners"`        // registros con etiqueta Partner
	RecentContacts int `json:"recent_contacts"` // último contacto en los 30 días anteriores
}

// ChartItemDTO un punto nombre/valor para los gráficos de distribución.
type ChartItemDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityBucketDTO un bucket mensual del gráfico de actividad,
// en orden cronológico ascendente.
type ActivityBucketDTO struct {
	Label string `json:"label"` // ej. "Mar 26"
	Count int    `json:"count"`
}
