package fichatecnica

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a esa tx.
// Solo se usa en el modo de actualización de precio transaccional.
type TxRunner interface {
	RunFicha(ctx context.Context, fn func(
		fichaRepo repository.FichaTecnicaRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SheetGenerator genera la ficha técnica imprimible.
type SheetGenerator interface {
	GenerateFichaTecnicaPDF(ctx context.Context, product *entity.Product, lines []*entity.FichaTecnicaLine) ([]byte, error)
}
