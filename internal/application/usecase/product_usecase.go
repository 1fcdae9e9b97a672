package usecase

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// ProductUseCase lecturas del catálogo de productos finales.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// ListActive lista los productos activos con las columnas que el esquema tenga disponibles.
func (uc *ProductUseCase) ListActive(ctx context.Context) ([]map[string]any, error) {
	rows, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}
