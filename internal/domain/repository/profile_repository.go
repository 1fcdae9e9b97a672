package repository

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

// ProfileRepository define el puerto de lectura de perfiles (DIP).
type ProfileRepository interface {
	// GetByID devuelve (nil, nil) si el perfil aún no existe.
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
}
