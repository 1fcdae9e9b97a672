// Package pdf genera la hoja imprimible de una ficha técnica para el piso de fábrica.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Produto final + nome   │  slug + versão + fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: rendimento / preço de venda / N° de insumos        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Insumo | Qtd | Un | Perda% | Qtd bruta           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el slug + leyenda                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

var _ fichatecnica.SheetGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 63, Blue: 4}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa fichatecnica.SheetGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateFichaTecnicaPDF genera el PDF y devuelve sus bytes. lines no puede estar vacío.
func (g *MarotoPDFGenerator) GenerateFichaTecnicaPDF(
	_ context.Context,
	product *entity.Product,
	lines []*entity.FichaTecnicaLine,
) ([]byte, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("pdf: ficha técnica sin líneas")
	}
	head := lines[0]

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha técnica "+head.Slug, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, head))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(product, head, len(lines)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(head.Slug))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: produto final y nome de la ficha (izq), slug + versão + fecha (der).
func headerRow(product *entity.Product, head *entity.FichaTecnicaLine) core.Row {
	name := "—"
	if head.Name != nil && strings.TrimSpace(*head.Name) != "" {
		name = *head.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ficha: "+name, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA TÉCNICA DE PRODUÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(head.Slug, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Versão %d  |  %s", head.Version, head.CreatedAt.Format("02/01/2006")), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: rendimento, preço de venda y cantidad de insumos.
func summaryRow(product *entity.Product, head *entity.FichaTecnicaLine, count int) core.Row {
	price := "—"
	if !product.SellingPrice.IsZero() {
		price = "R$ " + formatMoney(product.SellingPrice.StringFixed(2))
	}
	item := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		item("RENDIMENTO", head.YieldUnits.String()+" un"),
		item("PREÇO DE VENDA", price),
		item("INSUMOS", fmt.Sprintf("%d", count)),
	)
}

// tableHeaderRow: cabecera de la tabla de insumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Insumo", 4, align.Left),
		h("Qtd.", 2, align.Right),
		h("Un.", 1, align.Center),
		h("Perda %", 2, align.Right),
		h("Qtd. bruta", 2, align.Right),
	)
}

// tableLineRows: una fila por insumo; la cantidad bruta incluye la perda padrão.
func tableLineRows(lines []*entity.FichaTecnicaLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.ProductionOrder), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.IngredientID, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Quantity.StringFixed(3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(l.UnitMeasure, "—"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.StandardLoss.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.GrossQuantity().StringFixed(3), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// footerRow: QR con el slug para escanear en el piso de fábrica.
func footerRow(slug string) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(slug, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Escaneie o código para abrir esta ficha no sistema.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Quantidade bruta = quantidade × (1 + perda / 100)", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles y coma decimal en un número con dos decimales.
// Ej: "25000.50" → "25.000,50"
func formatMoney(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
