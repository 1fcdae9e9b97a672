// Package testutil reúne adaptadores en memoria de los puertos de repositorio para tests.
package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-fabrica-api/internal/domain"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/entity"
	"github.com/jhoicas/gestao-fabrica-api/internal/domain/repository"
)

var (
	_ repository.FichaTecnicaRepository = (*FichaRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ProfileRepository      = (*ProfileRepo)(nil)
	_ repository.AccountRepository      = (*AccountRepo)(nil)
)

// ── Fichas técnicas ───────────────────────────────────────────────────────────

// FichaRepo simula la tabla fichas_tecnicas con unicidad (slug, ordem_producao).
type FichaRepo struct {
	mu        sync.Mutex
	lines     []*entity.FichaTecnicaLine
	taken     map[string]bool
	InsertErr error    // si no es nil, todo insert falla con este error
	Attempts  []string // slug de cada insert recibido, en orden
}

// NewFichaRepo crea el repo con slugs ya ocupados por otras fichas.
func NewFichaRepo(taken ...string) *FichaRepo {
	r := &FichaRepo{taken: map[string]bool{}}
	for _, s := range taken {
		r.taken[s] = true
	}
	return r
}

func (r *FichaRepo) InsertLines(_ context.Context, lines []*entity.FichaTecnicaLine) ([]*entity.FichaTecnicaLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(lines) == 0 {
		return []*entity.FichaTecnicaLine{}, nil
	}
	r.Attempts = append(r.Attempts, lines[0].Slug)
	if r.InsertErr != nil {
		return nil, r.InsertErr
	}
	for _, l := range lines {
		if r.taken[l.Slug] || r.existsLocked(l.Slug, l.ProductionOrder) {
			return nil, domain.ErrDuplicate
		}
	}
	out := make([]*entity.FichaTecnicaLine, 0, len(lines))
	for _, l := range lines {
		cp := *l
		r.lines = append(r.lines, &cp)
		ret := cp
		out = append(out, &ret)
	}
	return out, nil
}

func (r *FichaRepo) existsLocked(slug string, order int) bool {
	for _, l := range r.lines {
		if l.Slug == slug && l.ProductionOrder == order {
			return true
		}
	}
	return false
}

func (r *FichaRepo) ListBySlug(_ context.Context, slug string) ([]*entity.FichaTecnicaLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.FichaTecnicaLine
	for _, l := range r.lines {
		if l.Slug == slug {
			cp := *l
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.FichaTecnicaLine) int { return a.ProductionOrder - b.ProductionOrder })
	return out, nil
}

func (r *FichaRepo) ListByFinalProduct(_ context.Context, finalProductID string) ([]map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []map[string]any
	for _, l := range r.lines {
		if l.FinalProductID != finalProductID {
			continue
		}
		out = append(out, map[string]any{
			"id":               l.ID,
			"produto_final_id": l.FinalProductID,
			"insumo_id":        l.IngredientID,
			"quantidade":       l.Quantity,
			"ordem_producao":   l.ProductionOrder,
			"slug":             l.Slug,
		})
	}
	return out, nil
}

// Lines devuelve una copia de todas las líneas guardadas.
func (r *FichaRepo) Lines() []entity.FichaTecnicaLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.FichaTecnicaLine, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, *l)
	}
	return out
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	mu             sync.Mutex
	products       map[string]*entity.Product
	UpdatePriceErr error
	PriceUpdates   int
}

// NewProductRepo crea el catálogo con los productos dados.
func NewProductRepo(products ...*entity.Product) *ProductRepo {
	r := &ProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) UpdatePrice(_ context.Context, id string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PriceUpdates++
	if r.UpdatePriceErr != nil {
		return r.UpdatePriceErr
	}
	if p, ok := r.products[id]; ok {
		p.SellingPrice = price
	}
	return nil
}

func (r *ProductRepo) ListActive(_ context.Context) ([]map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []map[string]any{}
	for _, p := range r.products {
		if p.Active {
			out = append(out, map[string]any{"id": p.ID, "nome": p.Name, "preco_venda": p.SellingPrice})
		}
	}
	return out, nil
}

// ── Perfiles y cuentas ────────────────────────────────────────────────────────

// ProfileRepo perfiles por ID.
type ProfileRepo struct {
	Profiles map[string]*entity.Profile
	Err      error
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Profiles[id], nil
}

// AccountRepo cuentas por email; Calls cuenta las consultas recibidas.
type AccountRepo struct {
	Accounts map[string]*entity.Account
	Err      error
	Calls    int
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Accounts[email], nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner simula commit/rollback sobre FichaRepo y ProductRepo restaurando un snapshot.
type TxRunner struct {
	Ficha    *FichaRepo
	Products *ProductRepo
	Runs     int
}

func (t *TxRunner) RunFicha(_ context.Context, fn func(
	fichaRepo repository.FichaTecnicaRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.Runs++

	t.Ficha.mu.Lock()
	linesSnapshot := slices.Clone(t.Ficha.lines)
	t.Ficha.mu.Unlock()

	t.Products.mu.Lock()
	pricesSnapshot := make(map[string]decimal.Decimal, len(t.Products.products))
	for id, p := range t.Products.products {
		pricesSnapshot[id] = p.SellingPrice
	}
	t.Products.mu.Unlock()

	if err := fn(t.Ficha, t.Products); err != nil {
		t.Ficha.mu.Lock()
		t.Ficha.lines = linesSnapshot
		t.Ficha.mu.Unlock()

		t.Products.mu.Lock()
		for id, price := range pricesSnapshot {
			t.Products.products[id].SellingPrice = price
		}
		t.Products.mu.Unlock()
		return err
	}
	return nil
}
