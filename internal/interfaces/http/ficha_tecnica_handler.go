package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
)

const msgInvalidPayload = "payload inválido"

// FichaTecnicaHandler maneja las peticiones HTTP de fichas técnicas (protegido).
type FichaTecnicaHandler struct {
	create *fichatecnica.CreateUseCase
	query  *fichatecnica.QueryUseCase
	pdf    *fichatecnica.PDFUseCase
	log    zerolog.Logger
}

// NewFichaTecnicaHandler construye el handler.
func NewFichaTecnicaHandler(
	create *fichatecnica.CreateUseCase,
	query *fichatecnica.QueryUseCase,
	pdf *fichatecnica.PDFUseCase,
	log zerolog.Logger,
) *FichaTecnicaHandler {
	return &FichaTecnicaHandler{create: create, query: query, pdf: pdf, log: log}
}

// Create godoc
// @Summary      Crear ficha técnica
// @Description  Inserta una línea por insumo bajo un slug único (base, base-1, ... base-4).
// @Tags         fichas-tecnicas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFichaTecnicaRequest  true  "Produto final e insumos"
// @Success      201   {object}  dto.DataResponse[[]dto.FichaTecnicaLineResponse]
// @Failure      400   {object}  dto.SimpleErrorResponse
// @Failure      500   {object}  dto.SimpleErrorResponse
// @Router       /api/fichas-tecnicas [post]
func (h *FichaTecnicaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFichaTecnicaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgInvalidPayload})
	}

	rows, err := h.create.Create(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgInvalidPayload})
		case errors.Is(err, domain.ErrSlugExhausted):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.SimpleErrorResponse{Error: domain.ErrSlugExhausted.Error()})
		case errors.Is(err, domain.ErrUnexpectedInsert):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.SimpleErrorResponse{Error: domain.ErrUnexpectedInsert.Error()})
		default:
			h.log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("crear ficha técnica")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.SimpleErrorResponse{Error: "error interno"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[[]dto.FichaTecnicaLineResponse]{
		Data: fichatecnica.ToLineResponses(rows),
	})
}

// GetBySlug godoc
// @Summary      Obtener ficha técnica por slug
// @Tags         fichas-tecnicas
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Slug de la ficha"
// @Success      200   {object}  dto.DataResponse[[]dto.FichaTecnicaLineResponse]
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fichas-tecnicas/{slug} [get]
func (h *FichaTecnicaHandler) GetBySlug(c *fiber.Ctx) error {
	lines, err := h.query.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.queryError(c, err)
	}
	return c.JSON(dto.DataResponse[[]dto.FichaTecnicaLineResponse]{Data: fichatecnica.ToLineResponses(lines)})
}

// List godoc
// @Summary      Listar líneas de fichas técnicas de un produto final
// @Description  Las columnas ausentes en el esquema se omiten de cada fila.
// @Tags         fichas-tecnicas
// @Security     Bearer
// @Produce      json
// @Param        produto_final_id  query  string  true  "ID del produto final"
// @Success      200  {object}  dto.DataResponse[[]map[string]any]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fichas-tecnicas [get]
func (h *FichaTecnicaHandler) List(c *fiber.Ctx) error {
	rows, err := h.query.ListByFinalProduct(c.UserContext(), c.Query("produto_final_id"))
	if err != nil {
		return h.queryError(c, err)
	}
	return c.JSON(dto.DataResponse[[]map[string]any]{Data: rows})
}

// DownloadPDF godoc
// @Summary      Descargar la hoja imprimible de la ficha técnica
// @Tags         fichas-tecnicas
// @Security     Bearer
// @Produce      application/pdf
// @Param        slug  path  string  true  "Slug de la ficha"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fichas-tecnicas/{slug}/pdf [get]
func (h *FichaTecnicaHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.DownloadSheet(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.queryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

func (h *FichaTecnicaHandler) queryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro requerido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ficha técnica no encontrada"})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("consultar fichas técnicas")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
