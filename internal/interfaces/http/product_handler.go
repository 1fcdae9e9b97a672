package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar produtos activos
// @Description  Las columnas opcionales que el esquema no tenga se omiten de cada fila.
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse[[]map[string]any]
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("listar produtos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.DataResponse[[]map[string]any]{Data: rows})
}
