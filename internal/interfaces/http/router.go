package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/usecase"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccessUC      *usecase.AccessUseCase
	ProductUC     *usecase.ProductUseCase
	CreateFicha   *fichatecnica.CreateUseCase
	QueryFicha    *fichatecnica.QueryUseCase
	FichaSheetPDF *fichatecnica.PDFUseCase
	JWTSecret     string
	JWTIssuer     string
	Log           zerolog.Logger
}

// productionRoles roles que gestionan fichas técnicas y el catálogo de produção.
var productionRoles = []string{entity.RoleMaster, entity.RoleAdmin, entity.RoleGerente, entity.RoleFabrica}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)

	// Estado de acceso: solo sesión; lo consulta el cliente para decidir la pantalla.
	accessHandler := NewAccessHandler(deps.AccessUC)
	api.Get("/access/status", auth, accessHandler.Status)

	// Rutas protegidas: sesión + cuenta activa (el rol sale del perfil)
	protected := api.Group("/", auth, RequireActiveAccess(deps.AccessUC))

	// Fichas técnicas
	fichas := protected.Group("/fichas-tecnicas")
	fichaHandler := NewFichaTecnicaHandler(deps.CreateFicha, deps.QueryFicha, deps.FichaSheetPDF, deps.Log)
	fichas.Post("/", RequireRole(productionRoles...), fichaHandler.Create)
	fichas.Get("/", fichaHandler.List)
	fichas.Get("/:slug", fichaHandler.GetBySlug)
	fichas.Get("/:slug/pdf", fichaHandler.DownloadPDF)

	// Produtos
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	protected.Get("/produtos", RequireRole(productionRoles...), productHandler.List)
}
