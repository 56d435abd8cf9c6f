package entity

import "time"

// Category agrupa productos del catálogo (blusas, pantalones, accesorios...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
