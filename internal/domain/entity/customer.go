package entity

import "time"

// Customer cliente de la boutique. El email es la clave de búsqueda para checkout y notificaciones.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Document  string
	Address   string
	CreatedAt time.Time
}

// FullName nombre y apellido separados por espacio.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
