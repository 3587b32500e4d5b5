package repository

import "context"

// Claves del almacén de ajustes persistente.
const (
	SettingsKeyPreferences = "crm-dashboard:preferences"
	SettingsKeyTheme       = "crm-dashboard:theme"
)

// SettingsRepository puerto clave-valor para ajustes de usuario (preferencias
// del dashboard y tema). El formato del valor es opaco para el almacén; no
// hay versionado: un valor incompatible se degrada campo a campo al cargar.
type SettingsRepository interface {
	// Get devuelve nil, nil si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put escribe el valor completo bajo la clave (last-write-wins).
	Put(ctx context.Context, key string, value []byte) error
}
