package dto

// ErrorResponse corpo de erro HTTP. Details carrega erros por campo nas
// falhas de validação.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Pagination metadados de página nas listagens paginadas.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
