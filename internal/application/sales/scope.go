// Package sales consultas de ventas con alcance según el rol del usuario.
package sales

import (
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Scope alcance de las ventas visibles. Own=true limita a las del cliente con CustomerEmail.
type Scope struct {
	Own           bool
	CustomerEmail string
}

// ScopeFor un usuario con rol cliente solo ve sus propias ventas; el resto ve todas.
func ScopeFor(id dto.Identity) Scope {
	if id.Role == entity.RoleCliente {
		return Scope{Own: true, CustomerEmail: strings.ToLower(strings.TrimSpace(id.Email))}
	}
	return Scope{}
}
