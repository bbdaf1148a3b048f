package entity

import "github.com/shopspring/decimal"

// Service representa un servicio del catálogo (corte, tinte, etc.).
type Service struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (s Service) GetID() string { return s.ID }

func (s Service) WithID(id string) Service {
	s.ID = id
	return s
}
