// Package fichatecnica contiene los casos de uso de fichas técnicas (bill of materials):
// alta con resolución optimista de slug, consultas y hoja imprimible.
package fichatecnica

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
	"github.com/jhoicas/gestao-fabrica-api/pkg/slug"
)

// DefaultMaxAttempts candidatos de slug que se prueban antes de rendirse.
const DefaultMaxAttempts = 5

// Modos de actualización del precio de venta del produto final.
const (
	PriceUpdateBestEffort    = "best_effort"
	PriceUpdateTransactional = "transactional"
)

// Config parámetros del alta.
type Config struct {
	MaxAttempts int
	PriceUpdate string
}

// CreateUseCase crea las líneas de una ficha técnica con un slug único.
//
// No reserva ni bloquea el slug: intenta el insert y, si la restricción de unicidad
// del backend lo rechaza, pasa al siguiente candidato (base, base-1, base-2, ...).
// Dos altas concurrentes con la misma base se resuelven en el backend: una gana el
// candidato y la otra reintenta con el siguiente.
type CreateUseCase struct {
	fichaRepo   repository.FichaTecnicaRepository
	productRepo repository.ProductRepository
	txRunner    TxRunner
	cfg         Config
	log         zerolog.Logger
	now         func() time.Time
}

// NewCreateUseCase construye el caso de uso. txRunner puede ser nil en modo best_effort.
func NewCreateUseCase(
	fichaRepo repository.FichaTecnicaRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	cfg Config,
	log zerolog.Logger,
) *CreateUseCase {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.PriceUpdate == "" {
		cfg.PriceUpdate = PriceUpdateBestEffort
	}
	return &CreateUseCase{
		fichaRepo:   fichaRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// Create valida la entrada, filtra insumos sin ID y prueba candidatos de slug en secuencia.
//
// Retorna:
//   - las filas insertadas si algún candidato entra.
//   - domain.ErrInvalidInput      si falta produto_final_id o insumos no es un array.
//   - domain.ErrSlugExhausted     si todos los candidatos colisionan.
//   - domain.ErrUnexpectedInsert  (envolviendo la causa) ante cualquier otro error; sin reintento.
func (uc *CreateUseCase) Create(ctx context.Context, in dto.CreateFichaTecnicaRequest) ([]*entity.FichaTecnicaLine, error) {
	if err := dto.Validate(in); err != nil || strings.TrimSpace(in.FinalProductID) == "" {
		return nil, domain.ErrInvalidInput
	}

	base := baseSlug(in)
	ingredients := filterIngredients(*in.Ingredients)
	now := uc.now()

	for attempt := 0; attempt < uc.cfg.MaxAttempts; attempt++ {
		candidate := slug.Candidate(base, attempt)
		lines := buildLines(in, ingredients, candidate, now)

		inserted, err := uc.insert(ctx, in.FinalProductID, lines, in.SellingPrice)
		if err == nil {
			uc.log.Info().
				Str("slug", candidate).
				Str("produto_final_id", in.FinalProductID).
				Int("lines", len(inserted)).
				Int("attempt", attempt).
				Msg("ficha técnica creada")
			return inserted, nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			uc.log.Debug().Str("slug", candidate).Int("attempt", attempt).Msg("slug en uso, probando el siguiente")
			continue
		}
		uc.log.Error().Err(err).Str("slug", candidate).Msg("insert de ficha técnica")
		return nil, fmt.Errorf("%w: %w", domain.ErrUnexpectedInsert, err)
	}

	uc.log.Warn().Str("slug_base", base).Int("attempts", uc.cfg.MaxAttempts).Msg("slugs agotados")
	return nil, domain.ErrSlugExhausted
}

// insert ejecuta un intento según el modo configurado.
func (uc *CreateUseCase) insert(
	ctx context.Context,
	finalProductID string,
	lines []*entity.FichaTecnicaLine,
	price *decimal.Decimal,
) ([]*entity.FichaTecnicaLine, error) {
	if uc.cfg.PriceUpdate == PriceUpdateTransactional && uc.txRunner != nil {
		var inserted []*entity.FichaTecnicaLine
		err := uc.txRunner.RunFicha(ctx, func(
			fichaRepo repository.FichaTecnicaRepository,
			productRepo repository.ProductRepository,
		) error {
			rows, err := fichaRepo.InsertLines(ctx, lines)
			if err != nil {
				return err
			}
			if price != nil {
				if err := productRepo.UpdatePrice(ctx, finalProductID, *price); err != nil {
					return fmt.Errorf("actualizar preco_venda: %w", err)
				}
			}
			inserted = rows
			return nil
		})
		return inserted, err
	}

	inserted, err := uc.fichaRepo.InsertLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	// Las líneas ya quedaron creadas: un fallo aquí no se revierte ni falla el alta.
	if price != nil {
		if err := uc.productRepo.UpdatePrice(ctx, finalProductID, *price); err != nil {
			uc.log.Warn().Err(err).Str("produto_final_id", finalProductID).Msg("actualizar preco_venda tras crear ficha técnica")
		}
	}
	return inserted, nil
}

// baseSlug usa slug_base normalizado; si no viene (o queda vacío) deriva ft-<produto_final_id>.
func baseSlug(in dto.CreateFichaTecnicaRequest) string {
	if in.SlugBase != nil {
		if s := slug.Normalize(*in.SlugBase); s != "" {
			return s
		}
	}
	return "ft-" + in.FinalProductID
}

func filterIngredients(in []dto.InsumoRequest) []dto.InsumoRequest {
	out := make([]dto.InsumoRequest, 0, len(in))
	for _, ing := range in {
		if strings.TrimSpace(ing.IngredientID) == "" {
			continue
		}
		out = append(out, ing)
	}
	return out
}

func buildLines(in dto.CreateFichaTecnicaRequest, ingredients []dto.InsumoRequest, candidate string, now time.Time) []*entity.FichaTecnicaLine {
	lines := make([]*entity.FichaTecnicaLine, 0, len(ingredients))
	for i, ing := range ingredients {
		lines = append(lines, &entity.FichaTecnicaLine{
			ID:              uuid.New().String(),
			FinalProductID:  in.FinalProductID,
			IngredientID:    ing.IngredientID,
			Quantity:        ing.Quantity,
			UnitMeasure:     ing.UnitMeasure,
			StandardLoss:    ing.StandardLoss,
			YieldUnits:      in.YieldUnits,
			ProductionOrder: i + 1,
			Version:         1,
			Active:          true,
			Name:            in.Name,
			Slug:            candidate,
			CreatedAt:       now,
		})
	}
	return lines
}

// ToLineResponses adapta las entidades al formato de respuesta.
func ToLineResponses(lines []*entity.FichaTecnicaLine) []dto.FichaTecnicaLineResponse {
	out := make([]dto.FichaTecnicaLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.FichaTecnicaLineResponse{
			ID:              l.ID,
			FinalProductID:  l.FinalProductID,
			IngredientID:    l.IngredientID,
			Quantity:        l.Quantity,
			UnitMeasure:     l.UnitMeasure,
			StandardLoss:    l.StandardLoss,
			YieldUnits:      l.YieldUnits,
			ProductionOrder: l.ProductionOrder,
			Version:         l.Version,
			Active:          l.Active,
			Name:            l.Name,
			Slug:            l.Slug,
			CreatedAt:       l.CreatedAt,
		})
	}
	return out
}
