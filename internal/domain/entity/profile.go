package entity

import "time"

// Roles válidos para Profile.
const (
	RoleMaster  = "master"
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
	RoleFabrica = "fabrica"
	RolePDV     = "pdv"
)

// Profile es el perfil de aplicación de un usuario autenticado por el proveedor externo.
// El ID coincide con el subject del token; el rol autoritativo vive aquí.
type Profile struct {
	ID        string
	Email     string
	Name      string
	Role      string // master, admin, gerente, fabrica, pdv
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
