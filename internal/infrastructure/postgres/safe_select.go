package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
)

// SelectQuery filtros, orden y límite de una lectura tolerante a columnas ausentes.
// Los placeholders se numeran en el orden en que se agregan los filtros.
type SelectQuery struct {
	where   []string
	args    []any
	orderBy string
	desc    bool
	limit   int
}

// Eq agrega "column = value".
func (q *SelectQuery) Eq(column string, value any) *SelectQuery {
	q.args = append(q.args, value)
	q.where = append(q.where, quoteField(column)+" = $"+strconv.Itoa(len(q.args)))
	return q
}

// OrderBy ordena por column; desc invierte el sentido.
func (q *SelectQuery) OrderBy(column string, desc bool) *SelectQuery {
	q.orderBy = column
	q.desc = desc
	return q
}

// Limit limita la cantidad de filas; n <= 0 no limita.
func (q *SelectQuery) Limit(n int) *SelectQuery {
	q.limit = n
	return q
}

// SelectModifier ajusta la consulta; se vuelve a aplicar en cada reintento.
type SelectModifier func(*SelectQuery)

// SchemaDriftError la lectura no pudo degradarse: la misma columna volvió a faltar
// o no quedaba ninguna columna por quitar. Conserva el error original del backend.
type SchemaDriftError struct {
	Table  string
	Column string
	Err    error
}

func (e *SchemaDriftError) Error() string { return e.Err.Error() }

func (e *SchemaDriftError) Unwrap() []error { return []error{domain.ErrSchemaDrift, e.Err} }

// SafeSelect lee table pidiendo fields (separados por coma). Si el backend responde que una
// columna no existe, la quita de la lista y reintenta; termina con éxito, con un error que no
// es de columna ausente, o con *SchemaDriftError si la columna ya se había quitado.
// No guarda nada entre llamadas.
func SafeSelect(ctx context.Context, q Querier, table, fields string, modify SelectModifier) ([]map[string]any, error) {
	return degradeColumns(table, splitFields(fields), func(cols []string) ([]map[string]any, error) {
		sql, args := buildSelect(table, cols, modify)
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return nil, err
		}
		return pgx.CollectRows(rows, pgx.RowToMap)
	})
}

// SafeSelectKnown como SafeSelect, pero antes del primer intento descarta los campos que
// information_schema no conoce. Si la introspección falla, se degrada por reintentos.
func SafeSelectKnown(ctx context.Context, q Querier, table, fields string, modify SelectModifier) ([]map[string]any, error) {
	if known, err := KnownColumns(ctx, q, table); err == nil {
		fields = PruneFields(fields, known)
	}
	return SafeSelect(ctx, q, table, fields, modify)
}

// degradeColumns ejecuta run con cols, quitando una columna por cada error de columna ausente.
func degradeColumns[T any](table string, cols []string, run func(cols []string) (T, error)) (T, error) {
	var zero T
	removed := make(map[string]bool)
	for {
		res, err := run(cols)
		if err == nil {
			return res, nil
		}
		column, ok := extractMissingColumn(err)
		if !ok {
			return zero, err
		}
		if removed[column] {
			return zero, &SchemaDriftError{Table: table, Column: column, Err: err}
		}
		next := removeField(cols, column)
		if len(next) == len(cols) || len(next) == 0 {
			// La columna no está en la lista (viene de un filtro) o no queda nada que pedir.
			return zero, &SchemaDriftError{Table: table, Column: column, Err: err}
		}
		removed[column] = true
		cols = next
	}
}

var missingColumnPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)column\s+"?([\w.]+)"?\s+does\s+not\s+exist`),
	regexp.MustCompile(`(?i)(?:a\s+)?coluna\s+"?([\w.]+)"?\s+n[ãa]o\s+existe`),
}

// extractMissingColumn devuelve el nombre corto de la columna ausente (sin calificador de tabla).
func extractMissingColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != codeUndefinedColumn {
			return "", false
		}
		msg = pgErr.Message
	}
	for _, re := range missingColumnPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			return shortName(m[1]), true
		}
	}
	return "", false
}

// removeField quita de cols los campos cuyo nombre corto coincide con column.
func removeField(cols []string, column string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.EqualFold(shortName(c), column) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// KnownColumns lista las columnas de table (opcionalmente "schema.tabla") según information_schema.
func KnownColumns(ctx context.Context, q Querier, table string) (map[string]bool, error) {
	schema, name := "", table
	if i := strings.LastIndex(table, "."); i >= 0 {
		schema, name = table[:i], table[i+1:]
	}
	const query = `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = $1 AND table_schema = COALESCE(NULLIF($2, ''), current_schema())`
	rows, err := q.Query(ctx, query, name, schema)
	if err != nil {
		return nil, fmt.Errorf("columnas de %s: %w", table, err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("columnas de %s: %w", table, err)
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[strings.ToLower(n)] = true
	}
	return known, nil
}

// PruneFields deja solo los campos conocidos. Con known vacío no filtra (tabla sin permisos
// de introspección o inexistente: que decida el backend).
func PruneFields(fields string, known map[string]bool) string {
	cols := splitFields(fields)
	if len(known) == 0 {
		return strings.Join(cols, ", ")
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "*" || known[strings.ToLower(shortName(c))] {
			out = append(out, c)
		}
	}
	return strings.Join(out, ", ")
}

func buildSelect(table string, cols []string, modify SelectModifier) (string, []any) {
	sq := &SelectQuery{}
	if modify != nil {
		modify(sq)
	}

	quoted := make([]string, 0, len(cols))
	for _, c := range cols {
		quoted = append(quoted, quoteField(c))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(" FROM ")
	b.WriteString(quoteField(table))
	if len(sq.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(sq.where, " AND "))
	}
	if sq.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(quoteField(sq.orderBy))
		if sq.desc {
			b.WriteString(" DESC")
		}
	}
	if sq.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(sq.limit))
	}
	return b.String(), sq.args
}

func splitFields(fields string) []string {
	parts := strings.Split(fields, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// quoteField escapa un identificador posiblemente calificado ("p.nome").
func quoteField(field string) string {
	if field == "*" {
		return field
	}
	return pgx.Identifier(strings.Split(field, ".")).Sanitize()
}

func shortName(field string) string {
	field = strings.Trim(field, `"`)
	if i := strings.LastIndex(field, "."); i >= 0 {
		return strings.Trim(field[i+1:], `"`)
	}
	return field
}
