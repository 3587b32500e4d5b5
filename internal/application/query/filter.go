// Package query implementa el Query Engine: una función pura que deriva el
// subconjunto visible de clientes a partir del estado de filtros.
package query

import (
	"strings"
	"time"

	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

// FilterState estado de filtros del listado. Efímero por sesión; el cliente
// lo espeja en las preferencias por su cuenta.
type FilterState struct {
	Search string // substring case-insensitive sobre name/email
	Tag    string // "" o "All" = sin filtro; si no, pertenencia exacta
	From   string // YYYY-MM-DD inclusive; vacío = sin cota inferior
	To     string // YYYY-MM-DD inclusive del día completo; vacío = sin cota superior
}

// Apply aplica los filtros en orden fijo: búsqueda → etiqueta → rango de
// fechas. Es pura y estable: devuelve un subconjunto en el orden del store,
// sin re-ordenar. El resultado con el mismo input es siempre idéntico.
func Apply(records []*entity.Customer, f FilterState) []*entity.Customer {
	out := bySearch(records, f.Search)
	out = byTag(out, f.Tag)
	out = byDateRange(out, f.From, f.To)
	return out
}

// bySearch filtra por substring case-insensitive sobre name O email.
// Query vacío deja pasar todo.
func bySearch(records []*entity.Customer, q string) []*entity.Customer {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return records
	}
	out := make([]*entity.Customer, 0, len(records))
	for _, c := range records {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// byTag filtra por pertenencia exacta de la etiqueta. "All" (o vacío) deja
// pasar todo.
func byTag(records []*entity.Customer, tag string) []*entity.Customer {
	if tag == "" || tag == entity.TagAll {
		return records
	}
	out := make([]*entity.Customer, 0, len(records))
	for _, c := range records {
		if c.HasTag(tag) {
			out = append(out, c)
		}
	}
	return out
}

// byDateRange filtra por LastContacted dentro de [from, to] inclusive. El
// extremo superior cubre el día calendario completo. Un registro cuya fecha
// no parsea queda excluido siempre que haya un filtro de fecha activo:
// comportamiento heredado que se preserva a propósito (ver tests).
func byDateRange(records []*entity.Customer, from, to string) []*entity.Customer {
	lower, hasLower := parseBound(from)
	upper, hasUpper := parseBound(to)
	if hasUpper {
		// inclusive del último instante del día
		upper = upper.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !hasLower && !hasUpper {
		return records
	}
	out := make([]*entity.Customer, 0, len(records))
	for _, c := range records {
		t, ok := entity.ParseDate(c.LastContacted)
		if !ok {
			continue
		}
		if hasLower && t.Before(lower) {
			continue
		}
		if hasUpper && t.After(upper) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// parseBound parsea un extremo del rango. Un extremo que no parsea equivale a
// extremo vacío (sin cota), igual que las comparaciones contra fecha inválida
// del comportamiento original.
func parseBound(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	t, ok := entity.ParseDate(s)
	return t, ok
}
