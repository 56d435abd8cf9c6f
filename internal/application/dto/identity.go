package dto

// Identity usuario autenticado que origina la operación (lo arma el middleware HTTP a partir del JWT).
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
