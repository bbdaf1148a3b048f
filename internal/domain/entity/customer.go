package entity

// Customer representa un cliente del salón.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Customer) GetID() string { return c.ID }

func (c Customer) WithID(id string) Customer {
	c.ID = id
	return c
}
