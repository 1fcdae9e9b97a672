package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// Asegura que AccountRepo implementa repository.AccountRepository.
var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo lectura de contas sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// GetByEmail obtiene la cuenta asociada al email. (nil, nil) si no hay fila.
// licenca_expira_em es DATE: se lee como medianoche UTC.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `
		SELECT id, email, ativo, COALESCE(status_conta, ''), licenca_expira_em, created_at, updated_at
		FROM contas WHERE lower(email) = lower($1) LIMIT 1`
	var a entity.Account
	var expires *time.Time
	err := r.q.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.Active, &a.Status, &expires, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conta: %w", err)
	}
	if expires != nil {
		t := time.Date(expires.Year(), expires.Month(), expires.Day(), 0, 0, 0, 0, time.UTC)
		a.LicenseExpiresAt = &t
	}
	return &a, nil
}
