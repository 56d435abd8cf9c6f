package entity

import "time"

// Branch representa una sucursal (física o lógica) con su propio stock.
type Branch struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
