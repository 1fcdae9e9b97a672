package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un produto final o insumo del catálogo.
type Product struct {
	ID           string
	Name         string
	SellingPrice decimal.Decimal // preco_venda
	UnitMeasure  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
