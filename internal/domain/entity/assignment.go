package entity

import "time"

// Assignment registra la entrega de una cantidad de producto a un cliente.
type Assignment struct {
	ID             string
	ProductID      string
	Product        ProductSnapshot
	ClientID       string
	Client         ClientSnapshot
	Quantity       int
	AssignedByID   string
	AssignedByName string
	Notes          string
	CreatedAt      time.Time
}
