package dto

// ReportRequest reporte de error o queja de un empleado para el administrador.
type ReportRequest struct {
	EmployeeName string `json:"employee_name" validate:"required,min=1,max=200"`
	Message      string `json:"message" validate:"required,min=1,max=2000"`
}

// AcceptedResponse confirma que el aviso fue aceptado para entrega asíncrona.
type AcceptedResponse struct {
	Status string `json:"status"`
}
