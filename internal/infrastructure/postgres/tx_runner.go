package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

var _ fichatecnica.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunFicha inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un error de fn (incluido domain.ErrDuplicate) se devuelve tal cual tras el rollback.
func (r *TxRunner) RunFicha(ctx context.Context, fn func(
	fichaRepo repository.FichaTecnicaRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFichaTecnicaRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
