package repository

import "github.com/jhoicas/crm-dashboard-api/internal/domain/entity"

// CustomerUpdate campos mutables de un cliente. ID, Avatar y LastContacted
// no se tocan en una edición.
type CustomerUpdate struct {
	Name  string
	Email string
	Phone string
	Tags  []string
}

// CustomerRepository define el puerto del Record Store de clientes.
//
// El store es la lista autoritativa de la sesión, ordenada del más reciente
// al más antiguo (las altas e importaciones se insertan al frente).
type CustomerRepository interface {
	// List devuelve un snapshot en orden del store (copias, no aliases).
	List() []*entity.Customer
	// GetByID devuelve nil, nil si el id no existe.
	GetByID(id string) (*entity.Customer, error)
	// Create inserta al frente. ErrDuplicate si el id ya existe.
	Create(c *entity.Customer) error
	// Update reemplaza los campos mutables. Si el id no existe es un no-op
	// silencioso (err nil): comportamiento aceptado del pipeline.
	Update(id string, fields CustomerUpdate) error
	// Delete elimina el registro. No-op silencioso si no existe.
	Delete(id string) error
	// BulkDelete elimina todos los ids presentes y devuelve cuántos borró.
	BulkDelete(ids []string) (int, error)
	// PrependBatch inserta el lote completo al frente, atómico: o entra
	// todo el lote o nada (ErrDuplicate aborta sin efecto).
	PrependBatch(batch []*entity.Customer) error
	// Count número de registros en el store.
	Count() int
}
