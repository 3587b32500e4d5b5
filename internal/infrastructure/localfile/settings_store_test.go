package localfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/localfile"
)

func newStore(t *testing.T) (*localfile.SettingsStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "settings.json")
	return localfile.NewSettingsStore(path), path
}

// Clave (o archivo) inexistente: nil, nil, no error.
func TestSettingsStore_GetInexistente(t *testing.T) {
	s, _ := newStore(t)
	v, err := s.Get(t.Context(), "nada")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSettingsStore_PutGetRoundTrip(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Put(t.Context(), "clave", []byte(`{"a":1}`)))
	v, err := s.Get(t.Context(), "clave")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(v))
}

// Put preserva el resto de claves del archivo.
func TestSettingsStore_PutPreservaOtrasClaves(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Put(t.Context(), "uno", []byte(`1`)))
	require.NoError(t, s.Put(t.Context(), "dos", []byte(`2`)))
	require.NoError(t, s.Put(t.Context(), "uno", []byte(`11`)))

	v1, err := s.Get(t.Context(), "uno")
	require.NoError(t, err)
	assert.Equal(t, "11", string(v1))
	v2, err := s.Get(t.Context(), "dos")
	require.NoError(t, err)
	assert.Equal(t, "2", string(v2))
}

// Solo se aceptan valores JSON válidos.
func TestSettingsStore_PutRechazaJSONInvalido(t *testing.T) {
	s, _ := newStore(t)
	assert.Error(t, s.Put(t.Context(), "clave", []byte(`{rota`)))
}

// Un archivo corrupto se trata como vacío: Get degrada a "sin valor" y el
// siguiente Put parte de cero.
func TestSettingsStore_ArchivoCorruptoDegrada(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("esto no es json"), 0o644))

	v, err := s.Get(t.Context(), "clave")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Put(t.Context(), "clave", []byte(`true`)))
	v, err = s.Get(t.Context(), "clave")
	require.NoError(t, err)
	assert.Equal(t, "true", string(v))
}

// La escritura no deja el archivo temporal atrás.
func TestSettingsStore_EscrituraAtomicaSinTemporal(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Put(t.Context(), "clave", []byte(`{}`)))

	_, err := os.Stat(path)
	assert.NoError(t, err, "el archivo final debe existir")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "el temporal debe haberse renombrado")
}
