package entity

import "time"

// Roles conocidos.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleCliente  = "cliente"
)

// Permisos especiales.
const (
	PermissionAll              = "*"
	PermissionSendNotification = "notificaciones:enviar"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Role rol con su lista de permisos.
type Role struct {
	ID          string
	Name        string
	Permissions []string
}

// Has indica si el rol concede el permiso (o todos vía "*").
func (r *Role) Has(permission string) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Permissions {
		if p == PermissionAll || p == permission {
			return true
		}
	}
	return false
}

// User usuario del sistema. FCMToken es el destino de las notificaciones push.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	FCMToken     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
