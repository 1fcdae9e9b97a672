// Package access contiene las reglas puras de acceso: estado de licencia de la cuenta
// y autorización de rutas por rol. No conoce HTTP ni persistencia.
package access

import (
	"math"
	"slices"
	"time"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

// Status resultado de evaluar el acceso de la cuenta.
type Status string

const (
	StatusLoading   Status = "loading"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
	StatusError     Status = "error"
)

// Rutas de aterrizaje usadas como destino de redirección.
const (
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RoutePurchaseOrders = "/pedidos-compra"
)

// Decision estado derivado en cada evaluación; nunca se persiste.
type Decision struct {
	Status        Status
	Role          string
	DaysRemaining *int // nil si la licencia no vence
}

// AccountLookup obtiene la cuenta por email del perfil. (nil, nil) = sin cuenta.
type AccountLookup func(email string) (*entity.Account, error)

// Evaluate aplica las reglas en orden; la primera que coincide decide:
//  1. sin perfil cargado        → loading
//  2. rol master                → active (no consulta la cuenta)
//  3. cuenta no encontrada/error → error
//  4. inactiva o suspenso/cancelado → suspended
//  5. licencia vencida (días < 0) → expired; si no, active con días restantes
//  6. resto                     → active
func Evaluate(profile *entity.Profile, lookup AccountLookup, today time.Time) Decision {
	if profile == nil {
		return Decision{Status: StatusLoading}
	}
	d := Decision{Role: profile.Role}
	if profile.Role == entity.RoleMaster {
		d.Status = StatusActive
		return d
	}

	account, err := lookup(profile.Email)
	if err != nil || account == nil {
		d.Status = StatusError
		return d
	}

	if !account.Active ||
		account.Status == entity.AccountStatusSuspenso ||
		account.Status == entity.AccountStatusCancelado {
		d.Status = StatusSuspended
		return d
	}

	if account.LicenseExpiresAt != nil {
		days := DaysUntil(*account.LicenseExpiresAt, today)
		if days < 0 {
			d.Status = StatusExpired
			return d
		}
		d.DaysRemaining = &days
	}
	d.Status = StatusActive
	return d
}

// DaysUntil = ceil((expiry - hoy a medianoche) / 1 día). La medianoche se toma en la
// zona horaria de expiry para que una fecha "date" (UTC 00:00) no se desplace un día.
func DaysUntil(expiry, today time.Time) int {
	t := today.In(expiry.Location())
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, expiry.Location())
	diff := expiry.Sub(midnight)
	return int(math.Ceil(diff.Hours() / 24))
}

// RedirectFor destino por defecto cuando un rol no puede ver una ruta.
func RedirectFor(role string) string {
	switch role {
	case entity.RolePDV:
		return RoutePurchaseOrders
	case entity.RoleAdmin, entity.RoleFabrica:
		return RouteDashboard
	default:
		return RouteDashboard
	}
}

// RouteDecision autoriza una ruta protegida. Sin sesión → login; rol fuera de
// requiredRoles → redirección según el rol. Una lista vacía admite cualquier rol.
func RouteDecision(role string, authenticated bool, requiredRoles []string) (allowed bool, redirect string) {
	if !authenticated {
		return false, RouteLogin
	}
	if len(requiredRoles) == 0 || slices.Contains(requiredRoles, role) {
		return true, ""
	}
	return false, RedirectFor(role)
}
