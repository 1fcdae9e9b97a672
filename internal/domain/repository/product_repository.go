package repository

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	// ListActive tolera columnas ausentes en el esquema: cada fila es un mapa columna → valor.
	ListActive(ctx context.Context) ([]map[string]any, error)
}
