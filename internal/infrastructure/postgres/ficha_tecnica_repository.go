package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

var _ repository.FichaTecnicaRepository = (*FichaTecnicaRepo)(nil)

const fichaTecnicaColumns = `id, produto_final_id, insumo_id, quantidade, unidade_medida, perda_padrao,
	rendimento, ordem_producao, versao, ativo, nome, slug, created_at`

// fichaTecnicaListFields columnas pedidas en el listado por produto; las ausentes se descartan.
const fichaTecnicaListFields = "id, produto_final_id, insumo_id, quantidade, unidade_medida, perda_padrao, " +
	"rendimento, ordem_producao, versao, ativo, nome, slug, created_at"

// FichaTecnicaRepo implementación del puerto FichaTecnicaRepository sobre PostgreSQL (usable con pool o tx).
type FichaTecnicaRepo struct {
	q Querier
}

// NewFichaTecnicaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFichaTecnicaRepository(q Querier) *FichaTecnicaRepo {
	return &FichaTecnicaRepo{q: q}
}

// InsertLines inserta todas las líneas en un único INSERT ... RETURNING.
// Sin líneas no se envía nada al backend.
func (r *FichaTecnicaRepo) InsertLines(ctx context.Context, lines []*entity.FichaTecnicaLine) ([]*entity.FichaTecnicaLine, error) {
	if len(lines) == 0 {
		return []*entity.FichaTecnicaLine{}, nil
	}

	const perRow = 13
	values := make([]string, 0, len(lines))
	args := make([]any, 0, len(lines)*perRow)
	for i, l := range lines {
		ph := make([]string, perRow)
		for j := range ph {
			ph[j] = "$" + strconv.Itoa(i*perRow+j+1)
		}
		values = append(values, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			l.ID, l.FinalProductID, l.IngredientID, l.Quantity, l.UnitMeasure, l.StandardLoss,
			l.YieldUnits, l.ProductionOrder, l.Version, l.Active, l.Name, l.Slug, l.CreatedAt,
		)
	}

	query := `INSERT INTO fichas_tecnicas (` + fichaTecnicaColumns + `)
		VALUES ` + strings.Join(values, ", ") + `
		RETURNING ` + fichaTecnicaColumns

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyInsertError(err)
	}
	inserted, err := pgx.CollectRows(rows, scanFichaTecnicaLine)
	if err != nil {
		return nil, classifyInsertError(err)
	}
	return inserted, nil
}

// ListBySlug devuelve las líneas de un slug ordenadas por ordem_producao.
func (r *FichaTecnicaRepo) ListBySlug(ctx context.Context, slug string) ([]*entity.FichaTecnicaLine, error) {
	query := `SELECT ` + fichaTecnicaColumns + `
		FROM fichas_tecnicas WHERE slug = $1 ORDER BY ordem_producao`
	rows, err := r.q.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("list fichas_tecnicas by slug: %w", err)
	}
	lines, err := pgx.CollectRows(rows, scanFichaTecnicaLine)
	if err != nil {
		return nil, fmt.Errorf("scan fichas_tecnicas: %w", err)
	}
	return lines, nil
}

// ListByFinalProduct lee vía SafeSelect: un esquema sin alguna columna opcional (nome, rendimento, ...)
// devuelve filas sin esa clave en lugar de fallar.
func (r *FichaTecnicaRepo) ListByFinalProduct(ctx context.Context, finalProductID string) ([]map[string]any, error) {
	rows, err := SafeSelect(ctx, r.q, "fichas_tecnicas", fichaTecnicaListFields, func(q *SelectQuery) {
		q.Eq("produto_final_id", finalProductID).OrderBy("slug", false)
	})
	if err != nil {
		return nil, fmt.Errorf("list fichas_tecnicas by produto: %w", err)
	}
	return rows, nil
}

func scanFichaTecnicaLine(row pgx.CollectableRow) (*entity.FichaTecnicaLine, error) {
	var l entity.FichaTecnicaLine
	err := row.Scan(
		&l.ID, &l.FinalProductID, &l.IngredientID, &l.Quantity, &l.UnitMeasure, &l.StandardLoss,
		&l.YieldUnits, &l.ProductionOrder, &l.Version, &l.Active, &l.Name, &l.Slug, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// classifyInsertError traduce la violación de unicidad al error de dominio que dispara el reintento.
func classifyInsertError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("insert fichas_tecnicas: %w", err)
}
