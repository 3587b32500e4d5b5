// Package localfile implementa el almacén de ajustes respaldado por un archivo
// JSON local: el análogo servidor del localStorage del navegador.
package localfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/crm-dashboard-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsStore)(nil)

// SettingsStore clave-valor sobre un único archivo JSON
// (map[clave]json.RawMessage). Los valores deben ser JSON válido.
// La escritura es atómica: archivo temporal + rename.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore construye el store sobre la ruta indicada. El archivo se
// crea en el primer Put.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Get devuelve nil, nil si la clave (o el archivo) no existe. Un archivo
// corrupto se trata como vacío: la recuperación campo a campo ocurre en la
// capa de aplicación, aquí solo se degrada a "sin valor".
func (s *SettingsStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	v, ok := all[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put escribe el valor bajo la clave, preservando el resto de claves.
func (s *SettingsStore) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("settings: valor no es JSON válido")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readAll()
	if err != nil {
		return err
	}
	all[key] = json.RawMessage(append([]byte(nil), value...))
	return s.writeAll(all)
}

func (s *SettingsStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("settings: leer %s: %w", s.path, err)
	}
	all := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &all); err != nil {
		// Archivo corrupto: se parte de cero en el siguiente Put.
		return map[string]json.RawMessage{}, nil
	}
	return all, nil
}

func (s *SettingsStore) writeAll(all map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("settings: crear directorio: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("settings: escribir temporal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("settings: rename: %w", err)
	}
	return nil
}
