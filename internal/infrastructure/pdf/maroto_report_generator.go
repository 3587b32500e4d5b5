// Package pdf implementa el informe PDF del dashboard usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app │ Fecha de generación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total / Leads / Partners / Contactos recientes    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top-5 etiquetas por frecuencia                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Actividad por mes (cronológica)                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/crm-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/crm-dashboard-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardPDF genera el informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardPDF(_ context.Context, data analytics.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe del dashboard CRM", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(data.Summary)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("Top 5 etiquetas"))
	m.AddRows(chartItemRows(data.Tags)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("Actividad por mes"))
	m.AddRows(activityRows(data.Activity)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la app (izq) y fecha de generación (der).
func headerRow(data analytics.ReportData) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(data.AppName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe del dashboard", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: los cuatro KPIs de cabecera.
func summaryRows(s dto.DashboardSummaryDTO) []core.Row {
	kpi := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6, Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	return []core.Row{
		row.New(16).Add(
			kpi("Clientes", s.Total),
			kpi("Leads", s.Leads),
			kpi("Partners", s.Partners),
			kpi("Contactos 30 días", s.RecentContacts),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
	)
}

// chartItemRows: una fila por etiqueta del top-5.
func chartItemRows(items []dto.ChartItemDTO) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(6).Add(
			col.New(8).Add(text.New(it.Name, props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d", it.Value), props.Text{
				Size: 9, Align: align.Right, Top: 1,
			})),
		))
	}
	if len(out) == 0 {
		out = append(out, emptyNote())
	}
	return out
}

// activityRows: una fila por bucket mensual, en orden cronológico.
func activityRows(buckets []dto.ActivityBucketDTO) []core.Row {
	out := make([]core.Row, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, row.New(6).Add(
			col.New(8).Add(text.New(b.Label, props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d", b.Count), props.Text{
				Size: 9, Align: align.Right, Top: 1,
			})),
		))
	}
	if len(out) == 0 {
		out = append(out, emptyNote())
	}
	return out
}

func emptyNote() core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1})),
	)
}
