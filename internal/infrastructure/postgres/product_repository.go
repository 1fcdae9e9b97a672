package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productListFields columnas del listado; varias son opcionales según la versión del esquema.
const productListFields = "id, nome, preco_venda, unidade_medida, categoria, codigo_barras, ativo"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, nome, preco_venda, unidade_medida, ativo, created_at, updated_at
		FROM produtos WHERE id = $1`
	var p entity.Product
	var unit *string
	var price *decimal.Decimal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &price, &unit, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	if price != nil {
		p.SellingPrice = *price
	}
	if unit != nil {
		p.UnitMeasure = *unit
	}
	return &p, nil
}

// UpdatePrice actualiza preco_venda. domain.ErrNotFound si el producto no existe.
func (r *ProductRepo) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE produtos SET preco_venda = $2, updated_at = NOW() WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update preco_venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista los productos activos ordenados por nome, con las columnas que existan.
func (r *ProductRepo) ListActive(ctx context.Context) ([]map[string]any, error) {
	rows, err := SafeSelectKnown(ctx, r.q, "produtos", productListFields, func(q *SelectQuery) {
		q.Eq("ativo", true).OrderBy("nome", false)
	})
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return rows, nil
}
