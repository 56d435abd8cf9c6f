package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.VariantRepository       = (*VariantRepo)(nil)
	_ repository.ProductImageRepository  = (*ProductImageRepo)(nil)
	_ repository.BranchRepository        = (*BranchRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.RoleRepository          = (*RoleRepo)(nil)
)

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ a accessor }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.categories.get(c.ID); ok {
			return domain.ErrDuplicate
		}
		st.categories.put(c.ID, *c)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.do(func(st *state) error {
		if c, ok := st.categories.get(id); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.do(func(st *state) error {
		for _, c := range st.categories.all() {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ProductRepo productos en memoria.
type ProductRepo struct{ a accessor }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.products.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(st *state) error {
		if p, ok := st.products.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.products.get(p.ID); !ok {
			return domain.ErrNotFound
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.do(func(st *state) error {
		for _, p := range st.products.all() {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}

// VariantRepo variantes en memoria.
type VariantRepo struct{ a accessor }

func (r *VariantRepo) Create(_ context.Context, v *entity.Variant) error {
	return r.a.do(func(st *state) error {
		for _, existing := range st.variants.rows {
			if existing.Code == v.Code {
				return domain.ErrDuplicate
			}
		}
		st.variants.put(v.ID, *v)
		return nil
	})
}

func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.a.do(func(st *state) error {
		if v, ok := st.variants.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *VariantRepo) FirstByProduct(ctx context.Context, productID string) (*entity.Variant, error) {
	list, err := r.ListByProduct(ctx, productID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *VariantRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	err := r.a.do(func(st *state) error {
		for _, v := range st.variants.all() {
			if v.ProductID == productID {
				v := v
				out = append(out, &v)
			}
		}
		return nil
	})
	return out, err
}

// ProductImageRepo imágenes en memoria.
type ProductImageRepo struct{ a accessor }

func (r *ProductImageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	return r.a.do(func(st *state) error {
		st.images.put(img.ID, *img)
		return nil
	})
}

func (r *ProductImageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	var out []*entity.ProductImage
	err := r.a.do(func(st *state) error {
		for _, img := range st.images.all() {
			if img.ProductID == productID {
				img := img
				out = append(out, &img)
			}
		}
		return nil
	})
	return out, err
}

// BranchRepo sucursales en memoria.
type BranchRepo struct{ a accessor }

func (r *BranchRepo) Create(_ context.Context, b *entity.Branch) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.branches.get(b.ID); ok {
			return domain.ErrDuplicate
		}
		st.branches.put(b.ID, *b)
		return nil
	})
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.a.do(func(st *state) error {
		if b, ok := st.branches.get(id); ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	var out []*entity.Branch
	err := r.a.do(func(st *state) error {
		for _, b := range st.branches.all() {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	return out, err
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockRepo stock en memoria. GetForUpdate no necesita bloquear: la tx ya tiene el lock del store.
type StockRepo struct{ a accessor }

func (r *StockRepo) Get(_ context.Context, variantID, branchID string) (*entity.StockEntry, error) {
	out := &entity.StockEntry{VariantID: variantID, BranchID: branchID}
	err := r.a.do(func(st *state) error {
		if s, ok := st.stock[stockKey{variantID, branchID}]; ok {
			*out = s
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(_ context.Context, variantID, branchID string) (*entity.StockEntry, error) {
	var out entity.StockEntry
	err := r.a.do(func(st *state) error {
		k := stockKey{variantID, branchID}
		s, ok := st.stock[k]
		if !ok {
			s = entity.StockEntry{VariantID: variantID, BranchID: branchID}
			st.stock[k] = s
		}
		out = s
		return nil
	})
	return &out, err
}

func (r *StockRepo) Upsert(_ context.Context, s *entity.StockEntry) error {
	return r.a.do(func(st *state) error {
		st.stock[stockKey{s.VariantID, s.BranchID}] = *s
		return nil
	})
}

func (r *StockRepo) ListByBranch(_ context.Context, branchID string, limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	err := r.a.do(func(st *state) error {
		for _, s := range st.stock {
			if s.BranchID == branchID {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return page(out, limit, offset), err
}

// StockMovementRepo movimientos en memoria.
type StockMovementRepo struct{ a accessor }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.do(func(st *state) error {
		st.movements.put(m.ID, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByVariant(_ context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.do(func(st *state) error {
		all := st.movements.all()
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].VariantID == variantID {
				m := all[i]
				out = append(out, &m)
			}
		}
		return nil
	})
	return page(out, limit, offset), err
}

// ── Clientes y ventas ─────────────────────────────────────────────────────────

// CustomerRepo clientes en memoria. Email único sin distinguir mayúsculas.
type CustomerRepo struct{ a accessor }

func findCustomerByEmail(st *state, email string) (entity.Customer, bool) {
	for _, c := range st.customers.all() {
		if strings.EqualFold(c.Email, email) {
			return c, true
		}
	}
	return entity.Customer{}, false
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.a.do(func(st *state) error {
		if c.Email != "" {
			if _, ok := findCustomerByEmail(st, c.Email); ok {
				return domain.ErrDuplicate
			}
		}
		st.customers.put(c.ID, *c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.do(func(st *state) error {
		if c, ok := st.customers.get(id); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.do(func(st *state) error {
		if c, ok := findCustomerByEmail(st, email); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetOrCreateByEmail(_ context.Context, c *entity.Customer) (*entity.Customer, error) {
	var out entity.Customer
	err := r.a.do(func(st *state) error {
		if existing, ok := findCustomerByEmail(st, c.Email); ok {
			out = existing
			return nil
		}
		st.customers.put(c.ID, *c)
		out = *c
		return nil
	})
	return &out, err
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.a.do(func(st *state) error {
		for _, c := range st.customers.all() {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return page(out, limit, offset), err
}

// SaleRepo ventas y líneas en memoria.
type SaleRepo struct{ a accessor }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.a.do(func(st *state) error {
		st.sales.put(s.ID, *s)
		return nil
	})
}

func (r *SaleRepo) AddLine(_ context.Context, l *entity.SaleLine) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.sales.get(l.SaleID); !ok {
			return domain.NotFound("venta %s", l.SaleID)
		}
		st.lines.put(l.ID, *l)
		return nil
	})
}

func (r *SaleRepo) UpdateTotal(_ context.Context, saleID string, total decimal.Decimal) error {
	return r.a.do(func(st *state) error {
		s, ok := st.sales.get(saleID)
		if !ok {
			return domain.NotFound("venta %s", saleID)
		}
		s.Total = total
		st.sales.put(saleID, s)
		return nil
	})
}

func (r *SaleRepo) UpdateStatus(_ context.Context, saleID, status, paymentStatus string) error {
	return r.a.do(func(st *state) error {
		s, ok := st.sales.get(saleID)
		if !ok {
			return domain.NotFound("venta %s", saleID)
		}
		s.Status, s.PaymentStatus = status, paymentStatus
		st.sales.put(saleID, s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.a.do(func(st *state) error {
		if s, ok := st.sales.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) ListLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	err := r.a.do(func(st *state) error {
		for _, l := range st.lines.all() {
			if l.SaleID == saleID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.a.do(func(st *state) error {
		all := st.sales.all()
		for i := len(all) - 1; i >= 0; i-- {
			s := all[i]
			if f.CustomerID != "" && s.CustomerID != f.CustomerID {
				continue
			}
			out = append(out, &s)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), err
}

// ── Usuarios y roles ──────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ a accessor }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.do(func(st *state) error {
		for _, existing := range st.users.rows {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(st *state) error {
		for _, u := range st.users.all() {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) UpdateFCMToken(_ context.Context, userID, token string) error {
	return r.a.do(func(st *state) error {
		u, ok := st.users.get(userID)
		if !ok {
			return domain.ErrUserNotFound
		}
		u.FCMToken = token
		st.users.put(userID, u)
		return nil
	})
}

func (r *UserRepo) ListWithToken(_ context.Context, roles []string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.do(func(st *state) error {
		for _, u := range st.users.all() {
			if strings.TrimSpace(u.FCMToken) == "" {
				continue
			}
			if len(roles) > 0 && !contains(roles, u.Role) {
				continue
			}
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// RoleRepo roles en memoria, indexados por nombre.
type RoleRepo struct{ a accessor }

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	return r.a.do(func(st *state) error {
		for _, existing := range st.roles.rows {
			if existing.Name == role.Name {
				return domain.ErrDuplicate
			}
		}
		st.roles.put(role.ID, *role)
		return nil
	})
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.a.do(func(st *state) error {
		for _, role := range st.roles.all() {
			if role.Name == name {
				role := role
				out = &role
				return nil
			}
		}
		return nil
	})
	return out, err
}
