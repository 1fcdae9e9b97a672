package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo lectura de perfis sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// GetByID obtiene el perfil cuyo id coincide con el subject del token. (nil, nil) si aún no existe.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT id, email, COALESCE(nome, ''), role, ativo, created_at, updated_at
		FROM perfis WHERE id = $1`
	var p entity.Profile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil: %w", err)
	}
	return &p, nil
}
