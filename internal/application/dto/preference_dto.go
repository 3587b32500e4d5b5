package dto

// ReorderRequest mueve el widget en From a la posición To (list-splice).
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ThemeDTO tema claro/oscuro, persistido bajo su propia clave.
type ThemeDTO struct {
	Theme string `json:"theme"` // "light" | "dark"
}
