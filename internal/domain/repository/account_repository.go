package repository

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// La implementación vive en infrastructure.
type AccountRepository interface {
	// GetByEmail devuelve (nil, nil) si no hay cuenta para ese email.
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}
