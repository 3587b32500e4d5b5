// Package analytics contiene el Aggregation Engine del dashboard: métricas de
// resumen y las dos tabulaciones listas para graficar (top-5 etiquetas y
// actividad por mes).
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

const topTags = 5 // etiquetas en el widget de distribución

// recentWindowDays ventana de "contactos recientes": inclusive de exactamente
// 30 días atrás; 31 días queda fuera.
const recentWindowDays = 30

// ReportGenerator puerto del generador del informe PDF (implementado en
// infrastructure/pdf).
type ReportGenerator interface {
	GenerateDashboardPDF(ctx context.Context, data ReportData) ([]byte, error)
}

// ReportData tabulaciones crudas que consume el generador del informe.
type ReportData struct {
	GeneratedAt time.Time
	AppName     string
	Summary     dto.DashboardSummaryDTO
	Tags        []dto.ChartItemDTO
	Activity    []dto.ActivityBucketDTO
}

// DashboardUseCase deriva las métricas sobre el Record Store COMPLETO,
// independiente del filtro activo: el filtro estrecha solo la vista de lista.
// Sin índices incrementales; rescan O(n) por petición, suficiente para el
// volumen esperado (decenas a pocos miles).
type DashboardUseCase struct {
	repo repository.CustomerRepository
	gen  ReportGenerator
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso. gen puede ser nil si no se
// expone el informe PDF.
func NewDashboardUseCase(repo repository.CustomerRepository, gen ReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, gen: gen, now: time.Now}
}

// Summary métricas de cabecera del dashboard.
func (uc *DashboardUseCase) Summary() dto.DashboardSummaryDTO {
	records := uc.repo.List()
	// Las fechas parseadas son medianoche UTC; la ventana se calcula en UTC
	// para que la frontera de 30 días no dependa del huso del servidor.
	now := uc.now().UTC()
	cutoff := startOfDay(now.AddDate(0, 0, -recentWindowDays))
	horizon := startOfDay(now).AddDate(0, 0, 1)

	out := dto.DashboardSummaryDTO{Total: len(records)}
	for _, c := range records {
		if c.HasTag(entity.TagLead) {
			out.Leads++
		}
		if c.HasTag(entity.TagPartner) {
			out.Partners++
		}
		if t, ok := entity.ParseDate(c.LastContacted); ok {
			if !t.Before(cutoff) && t.Before(horizon) {
				out.RecentContacts++
			}
		}
	}
	return out
}

// TagDistribution frecuencia por etiqueta sobre todos los registros (un
// registro suma a cada una de sus etiquetas), descendente, empates estables
// por orden de primera aparición, truncado al top-5.
func (uc *DashboardUseCase) TagDistribution() []dto.ChartItemDTO {
	counts := map[string]int{}
	var order []string
	for _, c := range uc.repo.List() {
		for _, tag := range c.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	items := make([]dto.ChartItemDTO, 0, len(order))
	for _, tag := range order {
		items = append(items, dto.ChartItemDTO{Name: tag, Value: counts[tag]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if len(items) > topTags {
		items = items[:topTags]
	}
	return items
}

// ActivityByMonth buckets mensuales por fecha de último contacto, en orden
// cronológico ascendente. Fechas que no parsean se descartan en silencio
// (comportamiento aceptado, no error).
func (uc *DashboardUseCase) ActivityByMonth() []dto.ActivityBucketDTO {
	type bucket struct {
		key   int // year*100 + monthIndex, ordena cronológicamente
		label string
		count int
	}
	byKey := map[int]*bucket{}
	for _, c := range uc.repo.List() {
		t, ok := entity.ParseDate(c.LastContacted)
		if !ok {
			continue
		}
		key := t.Year()*100 + int(t.Month()) - 1
		b, exists := byKey[key]
		if !exists {
			b = &bucket{key: key, label: monthLabel(t)}
			byKey[key] = b
		}
		b.count++
	}

	buckets := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })

	out := make([]dto.ActivityBucketDTO, len(buckets))
	for i, b := range buckets {
		out[i] = dto.ActivityBucketDTO{Label: b.label, Count: b.count}
	}
	return out
}

// ReportPDF genera el informe PDF con las tres tabulaciones.
func (uc *DashboardUseCase) ReportPDF(ctx context.Context, appName string) ([]byte, error) {
	if uc.gen == nil {
		return nil, fmt.Errorf("dashboard: generador de informes no configurado")
	}
	data := ReportData{
		GeneratedAt: uc.now(),
		AppName:     appName,
		Summary:     uc.Summary(),
		Tags:        uc.TagDistribution(),
		Activity:    uc.ActivityByMonth(),
	}
	pdf, err := uc.gen.GenerateDashboardPDF(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("dashboard: informe PDF: %w", err)
	}
	return pdf, nil
}

// monthLabel etiqueta corta mes + año de dos dígitos, ej: "Mar 26".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Ene", "Feb", "Mar", "Abr", "May", "Jun",
		"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
	}
	return fmt.Sprintf("%s %02d", months[t.Month()-1], t.Year()%100)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
