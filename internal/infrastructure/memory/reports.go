package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de reportes calculadas sobre el estado en memoria.
type ReportRepo struct{ a accessor }

func inPeriod(t time.Time, p repository.Period) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && !t.Before(*p.To) {
		return false
	}
	return true
}

func settledIn(st *state, p repository.Period) []entity.Sale {
	var out []entity.Sale
	for _, s := range st.sales.all() {
		if s.IsSettled() && inPeriod(s.CreatedAt, p) {
			out = append(out, s)
		}
	}
	return out
}

func (r *ReportRepo) Totals(_ context.Context, p repository.Period) (repository.TotalsResult, error) {
	res := repository.TotalsResult{Total: decimal.Zero}
	err := r.a.do(func(st *state) error {
		for _, s := range settledIn(st, p) {
			res.Total = res.Total.Add(s.Total)
			res.Count++
		}
		return nil
	})
	return res, err
}

func (r *ReportRepo) groupBy(p repository.Period, key func(entity.Sale) string) ([]repository.GroupTotal, error) {
	idx := map[string]int{}
	var out []repository.GroupTotal
	err := r.a.do(func(st *state) error {
		for _, s := range settledIn(st, p) {
			k := key(s)
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				out = append(out, repository.GroupTotal{Key: k, Total: decimal.Zero})
			}
			out[i].Total = out[i].Total.Add(s.Total)
			out[i].Count++
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, err
}

func (r *ReportRepo) TotalsByChannel(_ context.Context, p repository.Period) ([]repository.GroupTotal, error) {
	return r.groupBy(p, func(s entity.Sale) string { return s.Channel })
}

func (r *ReportRepo) TotalsByPaymentType(_ context.Context, p repository.Period) ([]repository.GroupTotal, error) {
	return r.groupBy(p, func(s entity.Sale) string { return s.PaymentType })
}

func (r *ReportRepo) DailyTotals(_ context.Context, p repository.Period) ([]repository.DailyTotal, error) {
	byDay := map[time.Time]*repository.DailyTotal{}
	err := r.a.do(func(st *state) error {
		for _, s := range settledIn(st, p) {
			t := s.CreatedAt
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			d, ok := byDay[day]
			if !ok {
				d = &repository.DailyTotal{Day: day, Total: decimal.Zero}
				byDay[day] = d
			}
			d.Total = d.Total.Add(s.Total)
			d.Count++
		}
		return nil
	})
	out := make([]repository.DailyTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, err
}

func matchesProductFilter(f repository.ProductFilter, s entity.Sale, l entity.SaleLine, p entity.Product) bool {
	if !inPeriod(s.CreatedAt, f.Period) {
		return false
	}
	if f.Year != 0 && s.CreatedAt.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(s.CreatedAt.Month()) != f.Month {
		return false
	}
	if len(f.Months) > 0 {
		found := false
		for _, m := range f.Months {
			if int(s.CreatedAt.Month()) == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Channel != "" && s.Channel != f.Channel {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.MinUnitPrice != nil && l.UnitPrice.LessThan(*f.MinUnitPrice) {
		return false
	}
	if f.MaxUnitPrice != nil && l.UnitPrice.GreaterThan(*f.MaxUnitPrice) {
		return false
	}
	return !f.ExcludesName(p.Name)
}

func (r *ReportRepo) ProductMetrics(_ context.Context, f repository.ProductFilter) ([]repository.ProductMetricRow, error) {
	idx := map[string]int{}
	var out []repository.ProductMetricRow
	err := r.a.do(func(st *state) error {
		for _, l := range st.lines.all() {
			s, ok := st.sales.get(l.SaleID)
			if !ok || !s.IsSettled() {
				continue
			}
			v, ok := st.variants.get(l.VariantID)
			if !ok {
				continue
			}
			p, ok := st.products.get(v.ProductID)
			if !ok || !matchesProductFilter(f, s, l, p) {
				continue
			}
			i, ok := idx[p.ID]
			if !ok {
				i = len(out)
				idx[p.ID] = i
				out = append(out, repository.ProductMetricRow{ProductID: p.ID, ProductName: p.Name, Amount: decimal.Zero})
			}
			out[i].Units += l.Quantity
			out[i].Amount = out[i].Amount.Add(l.Subtotal)
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) LowStock(_ context.Context, threshold, limit int) ([]repository.LowStockRow, error) {
	idx := map[string]int{}
	var out []repository.LowStockRow
	err := r.a.do(func(st *state) error {
		for _, s := range st.stock {
			if s.Quantity > threshold {
				continue
			}
			v, ok := st.variants.get(s.VariantID)
			if !ok {
				continue
			}
			p, ok := st.products.get(v.ProductID)
			if !ok {
				continue
			}
			i, ok := idx[p.ID]
			if !ok {
				i = len(out)
				idx[p.ID] = i
				out = append(out, repository.LowStockRow{ProductID: p.ID, ProductName: p.Name})
			}
			out[i].Units += s.Quantity
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units < out[j].Units
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *ReportRepo) CatalogCounts(_ context.Context) (products, variants int, err error) {
	err = r.a.do(func(st *state) error {
		products, variants = len(st.products.rows), len(st.variants.rows)
		return nil
	})
	return products, variants, err
}

func (r *ReportRepo) SaleLinesBetween(_ context.Context, from, to time.Time) ([]repository.SaleLineFact, error) {
	var out []repository.SaleLineFact
	err := r.a.do(func(st *state) error {
		for _, l := range st.lines.all() {
			s, ok := st.sales.get(l.SaleID)
			if !ok || s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
				continue
			}
			v, ok := st.variants.get(l.VariantID)
			if !ok {
				continue
			}
			p, _ := st.products.get(v.ProductID)
			out = append(out, repository.SaleLineFact{
				SaleID:      s.ID,
				SoldAt:      s.CreatedAt,
				ProductID:   v.ProductID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
			})
		}
		return nil
	})
	return out, err
}
