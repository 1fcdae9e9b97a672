package fichatecnica

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// QueryUseCase lecturas de fichas técnicas.
type QueryUseCase struct {
	fichaRepo repository.FichaTecnicaRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(fichaRepo repository.FichaTecnicaRepository) *QueryUseCase {
	return &QueryUseCase{fichaRepo: fichaRepo}
}

// GetBySlug devuelve las líneas de la ficha o domain.ErrNotFound.
func (uc *QueryUseCase) GetBySlug(ctx context.Context, slug string) ([]*entity.FichaTecnicaLine, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.fichaRepo.ListBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("ficha técnica por slug: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	return lines, nil
}

// ListByFinalProduct lista las líneas de todas las versiones de un produto final.
func (uc *QueryUseCase) ListByFinalProduct(ctx context.Context, finalProductID string) ([]map[string]any, error) {
	if strings.TrimSpace(finalProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.fichaRepo.ListByFinalProduct(ctx, finalProductID)
	if err != nil {
		return nil, fmt.Errorf("fichas técnicas por produto: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}
