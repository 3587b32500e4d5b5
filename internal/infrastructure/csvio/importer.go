// Package csvio implementa la lectura y escritura de archivos CSV de clientes.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
)

// Campos reconocidos de la cabecera, por alias exacto.
var headerAliases = map[string]string{
	"name":      "name",
	"Name":      "name",
	"Full Name": "name",
	"email":     "email",
	"Email":     "email",
	"phone":     "phone",
	"Phone":     "phone",
	"tags":      "tags",
}

// ParseCustomers lee un CSV con fila de cabecera y devuelve las filas de
// datos. Columnas no reconocidas se ignoran; líneas vacías se saltan. Si el
// contenido no es UTF-8 válido se reintenta como Windows-1252 (los exports de
// CRMs antiguos suelen venir así). Un archivo sin estructura CSV válida
// devuelve error de archivo.
func ParseCustomers(r io.Reader) ([]usecase.ImportRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: leer archivo: %w", err)
	}
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("csv: decodificar Windows-1252: %w", err)
		}
		data = decoded
	}
	// BOM de exports de hojas de cálculo
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parsear archivo: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Resolver columnas desde la cabecera
	cols := map[string]int{}
	for i, h := range records[0] {
		if field, ok := headerAliases[strings.TrimSpace(h)]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}

	get := func(row []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rows []usecase.ImportRow
	for _, rec := range records[1:] {
		if isEmptyRow(rec) {
			continue
		}
		row := usecase.ImportRow{
			Name:  get(rec, "name"),
			Email: get(rec, "email"),
			Phone: get(rec, "phone"),
		}
		if raw := get(rec, "tags"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					row.Tags = append(row.Tags, t)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
