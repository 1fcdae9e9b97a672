package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/usecase"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	apphttp "github.com/jhoicas/gestao-fabrica-api/internal/interfaces/http"
	"github.com/jhoicas/gestao-fabrica-api/internal/testutil"
	pkgjwt "github.com/jhoicas/gestao-fabrica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const validBody = `{
	"produto_final_id": "prod-1",
	"insumos": [
		{"insumoId": "polvilho", "quantidade": 1.5, "unidadeMedida": "kg", "perdaPadrao": 5},
		{"insumoId": "", "quantidade": 9},
		{"insumoId": "queijo", "quantidade": "0.8", "unidadeMedida": "kg", "perdaPadrao": 0}
	],
	"nome": "Pão de queijo 40un",
	"preco_venda": 12.5,
	"rendimento": 40
}`

type stubSheet struct{}

func (stubSheet) GenerateFichaTecnicaPDF(context.Context, *entity.Product, []*entity.FichaTecnicaLine) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type apiFixture struct {
	app      *fiber.App
	fichas   *testutil.FichaRepo
	products *testutil.ProductRepo
}

func newAPI(t *testing.T, takenSlugs ...string) apiFixture {
	t.Helper()
	now := time.Now()
	in30 := now.AddDate(0, 0, 30)
	ago30 := now.AddDate(0, 0, -30)

	profiles := &testutil.ProfileRepo{Profiles: map[string]*entity.Profile{
		"u-gerente":  {ID: "u-gerente", Email: "gerente@padaria.com.br", Role: entity.RoleGerente, Active: true},
		"u-pdv":      {ID: "u-pdv", Email: "pdv@padaria.com.br", Role: entity.RolePDV, Active: true},
		"u-vencido":  {ID: "u-vencido", Email: "vencido@padaria.com.br", Role: entity.RoleAdmin, Active: true},
		"u-suspenso": {ID: "u-suspenso", Email: "suspenso@padaria.com.br", Role: entity.RoleAdmin, Active: true},
		"u-master":   {ID: "u-master", Email: "root@fabrica.com.br", Role: entity.RoleMaster, Active: true},
	}}
	accounts := &testutil.AccountRepo{Accounts: map[string]*entity.Account{
		"gerente@padaria.com.br":  {Active: true, Status: entity.AccountStatusAtivo, LicenseExpiresAt: &in30},
		"pdv@padaria.com.br":      {Active: true, Status: entity.AccountStatusAtivo},
		"vencido@padaria.com.br":  {Active: true, Status: entity.AccountStatusAtivo, LicenseExpiresAt: &ago30},
		"suspenso@padaria.com.br": {Active: true, Status: entity.AccountStatusSuspenso},
	}}

	fichas := testutil.NewFichaRepo(takenSlugs...)
	products := testutil.NewProductRepo(&entity.Product{
		ID: "prod-1", Name: "Pão de Queijo", SellingPrice: decimal.RequireFromString("10"), Active: true,
	})
	log := zerolog.Nop()

	query := fichatecnica.NewQueryUseCase(fichas)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AccessUC:      usecase.NewAccessUseCase(profiles, accounts, log),
		ProductUC:     usecase.NewProductUseCase(products),
		CreateFicha:   fichatecnica.NewCreateUseCase(fichas, products, nil, fichatecnica.Config{}, log),
		QueryFicha:    query,
		FichaSheetPDF: fichatecnica.NewPDFUseCase(query, products, stubSheet{}),
		JWTSecret:     testJWTSecret,
		JWTIssuer:     testIssuer,
		Log:           log,
	})
	return apiFixture{app: app, fichas: fichas, products: products}
}

// tokenFor token como los del proveedor hospedado: sin app_role, el rol sale del perfil.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, userID+"@token", "", testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f apiFixture) do(t *testing.T, method, path, userID, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("Authorization", tokenFor(t, userID))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func dataOf(t *testing.T, resp *http.Response) []any {
	t.Helper()
	body := decodeBody(t, resp)
	data, ok := body["data"].([]any)
	require.True(t, ok, "la respuesta debe traer data como array")
	return data
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/fichas-tecnicas
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearFicha_201_YRoundTripPorSlug(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := dataOf(t, resp)
	require.Len(t, created, 2, "la entrada sin insumoId se descarta")
	first := created[0].(map[string]any)
	assert.Equal(t, "ft-prod-1", first["slug"])
	assert.Equal(t, float64(1), first["ordem_producao"])
	assert.Equal(t, "queijo", created[1].(map[string]any)["insumo_id"])

	got := f.do(t, http.MethodGet, "/api/fichas-tecnicas/ft-prod-1", "u-gerente", "")
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)
	lines := dataOf(t, got)
	require.Len(t, lines, 2)
	assert.Equal(t, first["id"], lines[0].(map[string]any)["id"])
}

func TestCrearFicha_DosVeces_SegundaConSufijo(t *testing.T) {
	f := newAPI(t)

	r1 := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer r1.Body.Close()
	r2 := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer r2.Body.Close()

	require.Equal(t, http.StatusCreated, r2.StatusCode)
	assert.Equal(t, "ft-prod-1-1", dataOf(t, r2)[0].(map[string]any)["slug"])
	assert.Equal(t, []string{"ft-prod-1", "ft-prod-1", "ft-prod-1-1"}, f.fichas.Attempts)
}

func TestCrearFicha_PayloadInvalido_400(t *testing.T) {
	cases := map[string]string{
		"json roto":         `{"produto_final_id": `,
		"sin produto":       `{"insumos": []}`,
		"sin insumos":       `{"produto_final_id": "prod-1"}`,
		"insumos no array":  `{"produto_final_id": "prod-1", "insumos": "polvilho"}`,
		"insumos nulo":      `{"produto_final_id": "prod-1", "insumos": null}`,
		"produto en blanco": `{"produto_final_id": "  ", "insumos": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAPI(t)
			resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": "payload inválido"}, decodeBody(t, resp))
			assert.Empty(t, f.fichas.Attempts)
		})
	}
}

func TestCrearFicha_InsumosVacios_201ConDataVacia(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", `{"produto_final_id": "prod-1", "insumos": []}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, dataOf(t, resp))
}

func TestCrearFicha_SlugsAgotados_500(t *testing.T) {
	f := newAPI(t, "ft-prod-1", "ft-prod-1-1", "ft-prod-1-2", "ft-prod-1-3", "ft-prod-1-4")
	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, domain.ErrSlugExhausted.Error(), decodeBody(t, resp)["error"])
	assert.Len(t, f.fichas.Attempts, 5)
}

func TestCrearFicha_ErrorInesperado_500SinDetalleInterno(t *testing.T) {
	f := newAPI(t)
	f.fichas.InsertErr = errors.New(`pq: password authentication failed for user "service_role"`)

	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, domain.ErrUnexpectedInsert.Error(), body["error"])
	assert.NotContains(t, body["error"], "service_role")
	assert.Len(t, f.fichas.Attempts, 1)
}

func TestCrearFicha_FalloDePrecio_201(t *testing.T) {
	f := newAPI(t)
	f.products.UpdatePriceErr = errors.New("permission denied")

	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, f.products.PriceUpdates)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate de acceso y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_CrearFicha(t *testing.T) {
	cases := []struct {
		user   string
		status int
		code   string
	}{
		{"u-pdv", http.StatusForbidden, "FORBIDDEN"},
		{"u-vencido", http.StatusForbidden, "LICENSE_EXPIRED"},
		{"u-suspenso", http.StatusForbidden, "ACCOUNT_SUSPENDED"},
		{"u-sin-perfil", http.StatusConflict, "PROFILE_LOADING"},
		{"", http.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			f := newAPI(t)
			resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", tc.user, validBody)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeBody(t, resp)["code"])
			assert.Empty(t, f.fichas.Attempts)
		})
	}
}

func TestGate_MasterSinCuenta_Pasa(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-master", validBody)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGate_PDVPuedeLeerFichas(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/fichas-tecnicas?produto_final_id=prod-1", "u-pdv", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccessStatus(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/access/status", "u-vencido", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "expired", body["status"])
	assert.Equal(t, "admin", body["role"])

	resp2 := f.do(t, http.MethodGet, "/api/access/status", "u-gerente", "")
	defer resp2.Body.Close()
	body2 := decodeBody(t, resp2)
	assert.Equal(t, "active", body2["status"])
	days, ok := body2["days_remaining"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 30, days, 1)

	resp3 := f.do(t, http.MethodGet, "/api/access/status", "u-master", "")
	defer resp3.Body.Close()
	body3 := decodeBody(t, resp3)
	assert.Equal(t, "active", body3["status"])
	assert.Nil(t, body3["days_remaining"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetFicha_SlugInexistente_404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/fichas-tecnicas/no-existe", "u-gerente", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListFichas(t *testing.T) {
	f := newAPI(t)
	created := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	created.Body.Close()

	missing := f.do(t, http.MethodGet, "/api/fichas-tecnicas", "u-gerente", "")
	defer missing.Body.Close()
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)

	resp := f.do(t, http.MethodGet, "/api/fichas-tecnicas?produto_final_id=prod-1", "u-gerente", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, dataOf(t, resp), 2)

	other := f.do(t, http.MethodGet, "/api/fichas-tecnicas?produto_final_id=prod-2", "u-gerente", "")
	defer other.Body.Close()
	assert.Empty(t, dataOf(t, other))
}

func TestDownloadPDF(t *testing.T) {
	f := newAPI(t)
	created := f.do(t, http.MethodPost, "/api/fichas-tecnicas", "u-gerente", validBody)
	created.Body.Close()

	resp := f.do(t, http.MethodGet, "/api/fichas-tecnicas/ft-prod-1/pdf", "u-gerente", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="ft-prod-1.pdf"`)
}

func TestListProdutos(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/produtos", "u-gerente", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataOf(t, resp)
	require.Len(t, data, 1)
	assert.Equal(t, "Pão de Queijo", data[0].(map[string]any)["nome"])

	blocked := f.do(t, http.MethodGet, "/api/produtos", "u-pdv", "")
	defer blocked.Body.Close()
	assert.Equal(t, http.StatusForbidden, blocked.StatusCode)
}
