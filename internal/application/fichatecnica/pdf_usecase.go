package fichatecnica

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

// PDFUseCase genera la hoja imprimible de una ficha técnica.
type PDFUseCase struct {
	query       *QueryUseCase
	productRepo repository.ProductRepository
	generator   SheetGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(query *QueryUseCase, productRepo repository.ProductRepository, generator SheetGenerator) *PDFUseCase {
	return &PDFUseCase{query: query, productRepo: productRepo, generator: generator}
}

// DownloadSheet devuelve (pdfBytes, filename). domain.ErrNotFound si el slug no existe.
// Si el produto final ya no está en el catálogo, la hoja se genera solo con su ID.
func (uc *PDFUseCase) DownloadSheet(ctx context.Context, slug string) ([]byte, string, error) {
	lines, err := uc.query.GetBySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}

	finalProductID := lines[0].FinalProductID
	product, err := uc.productRepo.GetByID(ctx, finalProductID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener produto final: %w", err)
	}
	if product == nil {
		product = &entity.Product{ID: finalProductID, Name: finalProductID}
	}

	pdf, err := uc.generator.GenerateFichaTecnicaPDF(ctx, product, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar ficha técnica: %w", err)
	}
	return pdf, slug + ".pdf", nil
}
