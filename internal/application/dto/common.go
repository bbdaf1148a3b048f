package dto

// ListRequest filtros de listados de ventas.
type ListRequest struct {
	Date  string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" validate:"min=0,max=500"`
}

// ErrorResponse cuerpo de error HTTP. Retryable indica que el cliente puede reintentar la misma solicitud.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Retryable bool              `json:"retryable,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"` // campo → regla incumplida
}

// ListResponse envoltorio genérico de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la respuesta; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
