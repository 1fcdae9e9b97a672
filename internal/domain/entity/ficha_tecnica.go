package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FichaTecnicaLine es una línea de la ficha técnica (bill of materials) de un produto final.
// Todas las líneas creadas en un mismo alta comparten Slug y FinalProductID.
type FichaTecnicaLine struct {
	ID              string
	FinalProductID  string
	IngredientID    string
	Quantity        decimal.Decimal
	UnitMeasure     string
	StandardLoss    decimal.Decimal // perda padrão, en %
	YieldUnits      decimal.Decimal // rendimento
	ProductionOrder int             // posición 1-based dentro del alta
	Version         int
	Active          bool
	Name            *string
	Slug            string
	CreatedAt       time.Time
}

// GrossQuantity cantidad a separar considerando la pérdida estándar: q × (1 + perda/100).
func (l *FichaTecnicaLine) GrossQuantity() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(l.StandardLoss.Div(decimal.NewFromInt(100)))
	return l.Quantity.Mul(factor)
}
