package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

func TestGenerateFichaTecnicaPDF(t *testing.T) {
	name := "Pão de queijo 40un"
	lines := []*entity.FichaTecnicaLine{
		{ID: "l-1", FinalProductID: "prod-1", IngredientID: "polvilho", Quantity: decimal.RequireFromString("1.5"),
			UnitMeasure: "kg", StandardLoss: decimal.NewFromInt(5), YieldUnits: decimal.NewFromInt(40),
			ProductionOrder: 1, Version: 1, Active: true, Name: &name, Slug: "pao-de-queijo", CreatedAt: time.Now()},
		{ID: "l-2", FinalProductID: "prod-1", IngredientID: "queijo", Quantity: decimal.RequireFromString("0.8"),
			UnitMeasure: "kg", YieldUnits: decimal.NewFromInt(40),
			ProductionOrder: 2, Version: 1, Active: true, Name: &name, Slug: "pao-de-queijo", CreatedAt: time.Now()},
	}
	product := &entity.Product{ID: "prod-1", Name: "Pão de Queijo", SellingPrice: decimal.RequireFromString("1250.9")}

	out, err := NewMarotoPDFGenerator().GenerateFichaTecnicaPDF(context.Background(), product, lines)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateFichaTecnicaPDF_SinLineas(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateFichaTecnicaPDF(context.Background(), &entity.Product{}, nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "12,50", formatMoney("12.50"))
	assert.Equal(t, "1.250,90", formatMoney("1250.90"))
	assert.Equal(t, "1.000.000,00", formatMoney("1000000.00"))
	assert.Equal(t, "-2.500,00", formatMoney("-2500.00"))
	assert.Equal(t, "300", formatMoney("300"))
}
