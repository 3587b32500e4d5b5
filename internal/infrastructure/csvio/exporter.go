package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

// Columnas del CSV de exportación: todos los campos del registro salvo id y
// avatar.
var exportHeader = []string{"name", "email", "phone", "tags", "last_contacted"}

// WriteCustomers escribe el CSV de exportación. Las tags se unen con ", ".
func WriteCustomers(w io.Writer, customers []*entity.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, c := range customers {
		row := []string{c.Name, c.Email, c.Phone, strings.Join(c.Tags, ", "), c.LastContacted}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename nombre del archivo exportado, sellado con la fecha.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("customers-%s.csv", t.Format("2006-01-02"))
}
