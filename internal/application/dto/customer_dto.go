package dto

// CustomerRequest cuerpo de creación/edición de un cliente. Avatar y
// last_contacted no son editables.
type CustomerRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Tags  []string `json:"tags"`
}

// CustomerResponse un cliente en respuestas.
type CustomerResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Tags          []string `json:"tags"`
	LastContacted string   `json:"last_contacted"`
}

// CustomerListResponse página del listado filtrado. Total es el tamaño del
// subconjunto filtrado, no del store completo.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BulkDeleteRequest ids a eliminar en lote.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse resultado del borrado en lote.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ImportResponse resultado de una importación CSV.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// SelectionRequest reemplaza el set de selección.
type SelectionRequest struct {
	IDs []string `json:"ids"`
}

// SelectionResponse set de selección actual.
type SelectionResponse struct {
	IDs []string `json:"ids"`
}
