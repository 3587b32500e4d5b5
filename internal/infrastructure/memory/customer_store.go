// Package memory implementa los stores en memoria de la sesión: el Record
// Store de clientes y el repositorio de usuarios. No hay backend durable para
// los registros; el store vive lo que vive el proceso.
package memory

import (
	"sync"

	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerStore)(nil)

// CustomerStore Record Store de clientes. Orden del slice: el más reciente
// primero (altas e importaciones entran al frente). Todas las operaciones
// devuelven y reciben copias; ningún caller comparte punteros con el store.
type CustomerStore struct {
	mu      sync.RWMutex
	records []*entity.Customer
	ids     map[string]struct{} // unicidad de id
}

// NewCustomerStore construye un store vacío.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{ids: make(map[string]struct{})}
}

// List devuelve un snapshot en orden del store.
func (s *CustomerStore) List() []*entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Customer, len(s.records))
	for i, c := range s.records {
		out[i] = c.Clone()
	}
	return out
}

// GetByID devuelve nil, nil si el id no existe.
func (s *CustomerStore) GetByID(id string) (*entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.records {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, nil
}

// Create inserta el cliente al frente del store.
func (s *CustomerStore) Create(c *entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[c.ID]; ok {
		return domain.ErrDuplicate
	}
	s.ids[c.ID] = struct{}{}
	s.records = append([]*entity.Customer{c.Clone()}, s.records...)
	return nil
}

// Update reemplaza los campos mutables. No-op silencioso si el id no existe.
func (s *CustomerStore) Update(id string, fields repository.CustomerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.records {
		if c.ID == id {
			c.Name = fields.Name
			c.Email = fields.Email
			c.Phone = fields.Phone
			c.Tags = append([]string(nil), fields.Tags...)
			return nil
		}
	}
	return nil
}

// Delete elimina el registro. No-op silencioso si no existe.
func (s *CustomerStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.records {
		if c.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			delete(s.ids, id)
			return nil
		}
	}
	return nil
}

// BulkDelete elimina todos los ids presentes y devuelve cuántos borró.
func (s *CustomerStore) BulkDelete(ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	kept := s.records[:0]
	removed := 0
	for _, c := range s.records {
		if _, ok := doomed[c.ID]; ok {
			delete(s.ids, c.ID)
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.records = kept
	return removed, nil
}

// PrependBatch inserta el lote completo al frente, preservando el orden del
// lote. Atómico: si algún id ya existe (o se repite dentro del lote) no se
// aplica nada.
func (s *CustomerStore) PrependBatch(batch []*entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(batch))
	for _, c := range batch {
		if _, ok := s.ids[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := seen[c.ID]; ok {
			return domain.ErrDuplicate
		}
		seen[c.ID] = struct{}{}
	}
	fresh := make([]*entity.Customer, 0, len(batch)+len(s.records))
	for _, c := range batch {
		s.ids[c.ID] = struct{}{}
		fresh = append(fresh, c.Clone())
	}
	s.records = append(fresh, s.records...)
	return nil
}

// Count número de registros en el store.
func (s *CustomerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
