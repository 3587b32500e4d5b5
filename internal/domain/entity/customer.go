package entity

import (
	"strings"
	"time"
)

// Etiquetas conocidas del CRM. El vocabulario es abierto: la edición y la
// importación CSV admiten cualquier string; estas constantes se usan para
// seeds, defaults y las métricas del dashboard.
const (
	TagLead     = "Lead"
	TagCustomer = "Customer"
	TagPartner  = "Partner"
	TagOverseas = "Overseas"
	TagVIP      = "VIP"
)

// DateLayout formato de visualización de LastContacted: mes/día/año sin ceros.
const DateLayout = "1/2/2006"

// Customer representa un cliente del panel CRM.
//
// LastContacted se guarda como string ya formateado (ej. "3/14/2026"); el
// parseo de vuelta a fecha es lossy por construcción: valores importados
// pueden no parsear y quedan fuera de filtros de fecha y agregaciones.
type Customer struct {
	ID            string   `json:"id"`     // inmutable, único en el store
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"` // URL de imagen, no editable
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Tags          []string `json:"tags"`
	LastContacted string   `json:"last_contacted"`
}

// HasTag indica si el cliente tiene exactamente esa etiqueta.
func (c *Customer) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone devuelve una copia profunda (el slice de tags no se comparte).
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.Tags = append([]string(nil), c.Tags...)
	return &cp
}

// dateLayouts formatos aceptados al parsear LastContacted. El primero es el
// formato de escritura; los otros cubren datos importados.
var dateLayouts = []string{
	DateLayout,
	"01/02/2006",
	"2006-01-02",
}

// ParseDate parsea una fecha de visualización. Devuelve ok=false si el valor
// no corresponde a ningún formato aceptado (nunca error: el silent-drop de
// fechas inválidas es comportamiento aceptado del pipeline).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate formatea una fecha al formato de visualización de LastContacted.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
