package entity

// Employee representa a un empleado del salón. Las ventas lo referencian por nombre, no por ID.
type Employee struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Photo string `json:"photo,omitempty"` // URL opcional
}

func (e Employee) GetID() string { return e.ID }

func (e Employee) WithID(id string) Employee {
	e.ID = id
	return e
}
