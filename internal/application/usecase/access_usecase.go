package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/access"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// AccessUseCase evalúa licencia y estado de la cuenta del usuario autenticado.
// Es el único punto de la aplicación que conoce de dónde salen perfil y cuenta.
type AccessUseCase struct {
	profiles repository.ProfileRepository
	accounts repository.AccountRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewAccessUseCase construye el caso de uso.
func NewAccessUseCase(profiles repository.ProfileRepository, accounts repository.AccountRepository, log zerolog.Logger) *AccessUseCase {
	return &AccessUseCase{profiles: profiles, accounts: accounts, log: log, now: time.Now}
}

// Evaluate carga el perfil del usuario y aplica las reglas de acceso.
// No devuelve error: los fallos de consulta se traducen en access.StatusError.
func (uc *AccessUseCase) Evaluate(ctx context.Context, userID string) access.Decision {
	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("consultar perfil")
		return access.Decision{Status: access.StatusError}
	}

	lookup := func(email string) (*entity.Account, error) {
		acc, err := uc.accounts.GetByEmail(ctx, email)
		if err != nil {
			err = fmt.Errorf("%w: %w", domain.ErrAccessLookup, err)
			uc.log.Error().Err(err).Str("email", email).Msg("consultar cuenta")
			return nil, err
		}
		return acc, nil
	}

	d := access.Evaluate(profile, lookup, uc.now())
	if d.Status != access.StatusActive {
		uc.log.Debug().Str("user_id", userID).Str("status", string(d.Status)).Msg("acceso no activo")
	}
	return d
}
