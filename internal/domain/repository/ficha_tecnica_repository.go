package repository

import (
	"context"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

// FichaTecnicaRepository define el puerto de persistencia de líneas de ficha técnica.
type FichaTecnicaRepository interface {
	// InsertLines inserta todas las líneas en una sola sentencia y devuelve las filas creadas.
	// Devuelve domain.ErrDuplicate si el slug viola la restricción de unicidad.
	InsertLines(ctx context.Context, lines []*entity.FichaTecnicaLine) ([]*entity.FichaTecnicaLine, error)
	// ListBySlug devuelve las líneas ordenadas por orden de producción (vacío si no existe).
	ListBySlug(ctx context.Context, slug string) ([]*entity.FichaTecnicaLine, error)
	// ListByFinalProduct tolera columnas ausentes: cada fila es un mapa columna → valor.
	ListByFinalProduct(ctx context.Context, finalProductID string) ([]map[string]any, error)
}
