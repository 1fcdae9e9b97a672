package entity

import "time"

// Estados de conta conocidos. Cualquier otro valor se trata como operativo.
const (
	AccountStatusAtivo     = "ativo"
	AccountStatusSuspenso  = "suspenso"
	AccountStatusCancelado = "cancelado"
)

// Account representa la cuenta (licencia) asociada a un email.
type Account struct {
	ID               string
	Email            string
	Active           bool
	Status           string     // ativo, suspenso, cancelado
	LicenseExpiresAt *time.Time // nil = sin vencimiento
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
