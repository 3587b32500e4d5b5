package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-dashboard-api/internal/domain"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/memory"
)

func customer(id, name string) *entity.Customer {
	return &entity.Customer{ID: id, Name: name, Tags: []string{"Lead"}, LastContacted: "3/1/2026"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden e inserción
// ──────────────────────────────────────────────────────────────────────────────

// Las altas entran al frente: el store queda en orden "más reciente primero".
func TestCustomerStore_CreateAlFrente(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Primero")))
	require.NoError(t, s.Create(customer("b", "Segundo")))

	records := s.List()
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestCustomerStore_CreateIdDuplicado(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Uno")))
	assert.ErrorIs(t, s.Create(customer("a", "Otro")), domain.ErrDuplicate)
	assert.Equal(t, 1, s.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de copias
// ──────────────────────────────────────────────────────────────────────────────

// List devuelve copias: mutar el resultado no toca el store.
func TestCustomerStore_ListDevuelveCopias(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Original")))

	snapshot := s.List()
	snapshot[0].Name = "Mutado"
	snapshot[0].Tags[0] = "Hackeado"

	fresh, err := s.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "Original", fresh.Name)
	assert.Equal(t, []string{"Lead"}, fresh.Tags)
}

func TestCustomerStore_GetByIDInexistente(t *testing.T) {
	s := memory.NewCustomerStore()
	c, err := s.GetByID("nada")
	require.NoError(t, err)
	assert.Nil(t, c, "id inexistente es nil, nil, no error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerStore_UpdateInexistenteEsNoOp(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Uno")))
	assert.NoError(t, s.Update("nada", repository.CustomerUpdate{Name: "X"}))
	assert.Equal(t, 1, s.Count())
}

func TestCustomerStore_BulkDeleteCuentaSoloExistentes(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Uno")))
	require.NoError(t, s.Create(customer("b", "Dos")))
	require.NoError(t, s.Create(customer("c", "Tres")))

	removed, err := s.BulkDelete([]string{"a", "c", "fantasma"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "b", s.List()[0].ID)
}

// Tras borrar, el id queda libre para reusarse.
func TestCustomerStore_DeleteLiberaElId(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Uno")))
	require.NoError(t, s.Delete("a"))
	assert.NoError(t, s.Create(customer("a", "Renacido")))
}

// ──────────────────────────────────────────────────────────────────────────────
// PrependBatch
// ──────────────────────────────────────────────────────────────────────────────

// El lote entra al frente preservando su orden interno.
func TestCustomerStore_PrependBatchOrden(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("viejo", "Viejo")))

	batch := []*entity.Customer{customer("n1", "Nuevo1"), customer("n2", "Nuevo2")}
	require.NoError(t, s.PrependBatch(batch))

	records := s.List()
	require.Len(t, records, 3)
	assert.Equal(t, []string{"n1", "n2", "viejo"},
		[]string{records[0].ID, records[1].ID, records[2].ID})
}

// Atómico: un id duplicado (contra el store o dentro del lote) rechaza el
// lote completo sin aplicar nada.
func TestCustomerStore_PrependBatchAtomico(t *testing.T) {
	s := memory.NewCustomerStore()
	require.NoError(t, s.Create(customer("a", "Existente")))

	err := s.PrependBatch([]*entity.Customer{customer("n1", "Ok"), customer("a", "Chocaría")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, s.Count(), "nada del lote debe haberse aplicado")

	err = s.PrependBatch([]*entity.Customer{customer("x", "Uno"), customer("x", "Repetido")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, s.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Generador sintético
// ──────────────────────────────────────────────────────────────────────────────

// Mismo seed, mismos nombres/emails/fechas (los ids son uuid y varían).
func TestGenerateCustomers_DeterministaPorSeed(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	a := memory.GenerateCustomers(20, 7, now)
	b := memory.GenerateCustomers(20, 7, now)

	require.Len(t, a, 20)
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Email, b[i].Email)
		assert.Equal(t, a[i].LastContacted, b[i].LastContacted)
		assert.Equal(t, a[i].Tags, b[i].Tags)
	}
}

// Todo registro generado tiene campos completos y fecha parseable.
func TestGenerateCustomers_CamposCompletos(t *testing.T) {
	for _, c := range memory.GenerateCustomers(50, 1, time.Now()) {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Avatar)
		assert.NotEmpty(t, c.Email)
		assert.NotEmpty(t, c.Phone)
		assert.NotEmpty(t, c.Tags)
		_, ok := entity.ParseDate(c.LastContacted)
		assert.True(t, ok, "fecha generada debe parsear: %s", c.LastContacted)
	}
}
