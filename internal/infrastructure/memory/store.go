// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con DB_DRIVER=memory para desarrollo local sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ checkout.TxRunner  = (*Store)(nil)
	_ inventory.TxRunner = (*Store)(nil)
)

// table filas indexadas por id, conservando el orden de inserción.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t table[T]) clone() table[T] {
	c := table[T]{rows: make(map[string]T, len(t.rows)), order: make([]string, len(t.order))}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	copy(c.order, t.order)
	return c
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

type stockKey struct {
	variantID string
	branchID  string
}

// state contenido completo de la base en memoria. Las entidades se guardan por valor.
type state struct {
	categories table[entity.Category]
	products   table[entity.Product]
	variants   table[entity.Variant]
	images     table[entity.ProductImage]
	branches   table[entity.Branch]
	stock      map[stockKey]entity.StockEntry
	movements  table[entity.StockMovement]
	customers  table[entity.Customer]
	sales      table[entity.Sale]
	lines      table[entity.SaleLine]
	users      table[entity.User]
	roles      table[entity.Role]
}

func newState() *state {
	return &state{
		categories: newTable[entity.Category](),
		products:   newTable[entity.Product](),
		variants:   newTable[entity.Variant](),
		images:     newTable[entity.ProductImage](),
		branches:   newTable[entity.Branch](),
		stock:      make(map[stockKey]entity.StockEntry),
		movements:  newTable[entity.StockMovement](),
		customers:  newTable[entity.Customer](),
		sales:      newTable[entity.Sale](),
		lines:      newTable[entity.SaleLine](),
		users:      newTable[entity.User](),
		roles:      newTable[entity.Role](),
	}
}

func (s *state) clone() *state {
	stock := make(map[stockKey]entity.StockEntry, len(s.stock))
	for k, v := range s.stock {
		stock[k] = v
	}
	return &state{
		categories: s.categories.clone(),
		products:   s.products.clone(),
		variants:   s.variants.clone(),
		images:     s.images.clone(),
		branches:   s.branches.clone(),
		stock:      stock,
		movements:  s.movements.clone(),
		customers:  s.customers.clone(),
		sales:      s.sales.clone(),
		lines:      s.lines.clone(),
		users:      s.users.clone(),
		roles:      s.roles.clone(),
	}
}

// accessor da acceso al estado: bloqueando el store (fuera de tx) o directo (dentro de una tx que ya tiene el lock).
type accessor interface {
	do(fn func(st *state) error) error
}

type storeAccess struct{ s *Store }

func (a storeAccess) do(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.cur)
}

type txAccess struct{ st *state }

func (a txAccess) do(fn func(st *state) error) error { return fn(a.st) }

// Store base de datos en memoria. Las transacciones se serializan con un único mutex:
// trabajan sobre una copia del estado y solo la publican si fn no retorna error.
type Store struct {
	mu  sync.Mutex
	cur *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{cur: newState()}
}

func (s *Store) runTx(fn func(a accessor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.cur.clone()
	if err := fn(txAccess{st: work}); err != nil {
		return err
	}
	s.cur = work
	return nil
}

// RunCheckout ejecuta fn con repos atados a una transacción en memoria.
func (s *Store) RunCheckout(ctx context.Context, fn func(r checkout.Repos) error) error {
	return s.runTx(func(a accessor) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(checkout.Repos{
			Customers: &CustomerRepo{a: a},
			Branches:  &BranchRepo{a: a},
			Products:  &ProductRepo{a: a},
			Variants:  &VariantRepo{a: a},
			Stock:     &StockRepo{a: a},
			Movements: &StockMovementRepo{a: a},
			Sales:     &SaleRepo{a: a},
		})
	})
}

// Run ejecuta fn con los repos de inventario atados a una transacción en memoria.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return s.runTx(func(a accessor) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&StockRepo{a: a}, &StockMovementRepo{a: a}, &VariantRepo{a: a}, &BranchRepo{a: a})
	})
}

// Repositorios fuera de transacción.

func (s *Store) Categories() *CategoryRepo     { return &CategoryRepo{a: storeAccess{s}} }
func (s *Store) Products() *ProductRepo        { return &ProductRepo{a: storeAccess{s}} }
func (s *Store) Variants() *VariantRepo        { return &VariantRepo{a: storeAccess{s}} }
func (s *Store) Images() *ProductImageRepo     { return &ProductImageRepo{a: storeAccess{s}} }
func (s *Store) Branches() *BranchRepo         { return &BranchRepo{a: storeAccess{s}} }
func (s *Store) Stock() *StockRepo             { return &StockRepo{a: storeAccess{s}} }
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{a: storeAccess{s}} }
func (s *Store) Customers() *CustomerRepo      { return &CustomerRepo{a: storeAccess{s}} }
func (s *Store) Sales() *SaleRepo              { return &SaleRepo{a: storeAccess{s}} }
func (s *Store) Users() *UserRepo              { return &UserRepo{a: storeAccess{s}} }
func (s *Store) Roles() *RoleRepo              { return &RoleRepo{a: storeAccess{s}} }
func (s *Store) Reports() *ReportRepo          { return &ReportRepo{a: storeAccess{s}} }
