package usecase

import (
	"io"

	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

// ImportRow una fila cruda del CSV de importación. Los campos ausentes llegan
// vacíos; los placeholders se sintetizan en ImportCSV (nunca quedan en blanco).
type ImportRow struct {
	Name  string
	Email string
	Phone string
	Tags  []string
}

// CustomerCSV puerto de lectura/escritura de CSV de clientes (implementado en
// infrastructure/csvio).
type CustomerCSV interface {
	// Parse devuelve las filas de datos del archivo; error si el archivo no
	// es un CSV legible.
	Parse(r io.Reader) ([]ImportRow, error)
	// Write escribe el CSV de exportación de los clientes dados.
	Write(w io.Writer, customers []*entity.Customer) error
}
