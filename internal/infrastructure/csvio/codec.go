package csvio

import (
	"io"

	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

var _ usecase.CustomerCSV = Codec{}

// Codec adaptador del puerto usecase.CustomerCSV sobre las funciones del
// paquete.
type Codec struct{}

// Parse implementa usecase.CustomerCSV.
func (Codec) Parse(r io.Reader) ([]usecase.ImportRow, error) {
	return ParseCustomers(r)
}

// Write implementa usecase.CustomerCSV.
func (Codec) Write(w io.Writer, customers []*entity.Customer) error {
	return WriteCustomers(w, customers)
}
