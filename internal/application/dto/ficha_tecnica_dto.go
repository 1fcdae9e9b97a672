package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFichaTecnicaRequest entrada del alta de ficha técnica.
// Insumos es puntero para distinguir "ausente/null" (inválido) de "[]" (válido).
type CreateFichaTecnicaRequest struct {
	FinalProductID string           `json:"produto_final_id" validate:"required"`
	Ingredients    *[]InsumoRequest `json:"insumos" validate:"required"`
	Name           *string          `json:"nome"`
	SellingPrice   *decimal.Decimal `json:"preco_venda"`
	YieldUnits     decimal.Decimal  `json:"rendimento"`
	SlugBase       *string          `json:"slug_base"`
}

// InsumoRequest línea de insumo; las entradas sin insumoId se descartan sin error.
type InsumoRequest struct {
	IngredientID string          `json:"insumoId"`
	Quantity     decimal.Decimal `json:"quantidade"`
	UnitMeasure  string          `json:"unidadeMedida"`
	StandardLoss decimal.Decimal `json:"perdaPadrao"`
}

// FichaTecnicaLineResponse fila devuelta por el backend tras el insert.
type FichaTecnicaLineResponse struct {
	ID              string          `json:"id"`
	FinalProductID  string          `json:"produto_final_id"`
	IngredientID    string          `json:"insumo_id"`
	Quantity        decimal.Decimal `json:"quantidade"`
	UnitMeasure     string          `json:"unidade_medida"`
	StandardLoss    decimal.Decimal `json:"perda_padrao"`
	YieldUnits      decimal.Decimal `json:"rendimento"`
	ProductionOrder int             `json:"ordem_producao"`
	Version         int             `json:"versao"`
	Active          bool            `json:"ativo"`
	Name            *string         `json:"nome"`
	Slug            string          `json:"slug"`
	CreatedAt       time.Time       `json:"created_at"`
}
