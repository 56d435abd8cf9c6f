package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/reporting"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textfold"
)

const (
	MetricUnits  = "unidades"
	MetricAmount = "monto"
	OrderDesc    = "desc"
	OrderAsc     = "asc"

	defaultTopLimit = 5
)

// topQuery parámetros validados del ranking.
type topQuery struct {
	filter    repository.ProductFilter
	metric    string
	order     string
	limit     int
	minAmount *decimal.Decimal
	maxAmount *decimal.Decimal
}

func parseDecimal(field, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.Invalid("%s inválido: %q", field, s)
	}
	return &d, nil
}

func (uc *UseCase) parseTopQuery(in dto.TopProductsRequest) (topQuery, error) {
	q := topQuery{
		metric: strings.ToLower(strings.TrimSpace(in.Metric)),
		order:  strings.ToLower(strings.TrimSpace(in.Order)),
		limit:  in.Limit,
	}
	if q.metric == "" {
		q.metric = MetricUnits
	}
	if q.metric != MetricUnits && q.metric != MetricAmount {
		return q, domain.Invalid("metric debe ser %q o %q", MetricUnits, MetricAmount)
	}
	if q.order == "" {
		q.order = OrderDesc
	}
	if q.order != OrderDesc && q.order != OrderAsc {
		return q, domain.Invalid("order debe ser %q o %q", OrderDesc, OrderAsc)
	}
	if q.limit <= 0 {
		q.limit = defaultTopLimit
	}
	if q.limit > maxLimit {
		q.limit = maxLimit
	}

	f := repository.ProductFilter{
		Year:         in.Year,
		Channel:      strings.TrimSpace(in.Channel),
		CategoryID:   strings.TrimSpace(in.CategoryID),
		ExcludeNames: textfold.SplitCSV(in.Exclude),
	}
	if in.Month < 0 || in.Month > 12 {
		return q, domain.Invalid("month debe estar entre 1 y 12")
	}
	f.Month = in.Month
	if in.Start != "" {
		start, err := uc.parseDate("start", in.Start)
		if err != nil {
			return q, err
		}
		f.From = &start
	}
	if in.End != "" {
		end, err := uc.parseDate("end", in.End)
		if err != nil {
			return q, err
		}
		to := end.AddDate(0, 0, 1)
		f.To = &to
	}
	if s := strings.TrimSpace(in.Season); s != "" {
		months, ok := reporting.SeasonMonths(s)
		if !ok {
			return q, domain.Invalid("season desconocida: %q", s)
		}
		f.Months = months
	}

	var err error
	if f.MinUnitPrice, err = parseDecimal("min_precio_unitario", in.MinUnitPrice); err != nil {
		return q, err
	}
	if f.MaxUnitPrice, err = parseDecimal("max_precio_unitario", in.MaxUnitPrice); err != nil {
		return q, err
	}
	if q.minAmount, err = parseDecimal("min_monto", in.MinAmount); err != nil {
		return q, err
	}
	if q.maxAmount, err = parseDecimal("max_monto", in.MaxAmount); err != nil {
		return q, err
	}
	q.filter = f
	return q, nil
}

// TopProducts ranking de productos por unidades o monto vendidos.
// En orden ascendente se descartan los productos con valor cero; los filtros de monto solo aplican a metric=monto.
func (uc *UseCase) TopProducts(ctx context.Context, in dto.TopProductsRequest) (*dto.TopProductsResponse, error) {
	q, err := uc.parseTopQuery(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ProductMetrics(ctx, q.filter)
	if err != nil {
		return nil, fmt.Errorf("productos top: %w", err)
	}
	rows = rankProducts(rows, q)

	items := make([]dto.TopProductDTO, 0, len(rows))
	for i, r := range rows {
		items = append(items, dto.TopProductDTO{
			Rank:        i + 1,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Units:       r.Units,
			Amount:      r.Amount.Round(2),
		})
	}
	return &dto.TopProductsResponse{Metric: q.metric, Order: q.order, Items: items}, nil
}

func metricValue(r repository.ProductMetricRow, metric string) decimal.Decimal {
	if metric == MetricAmount {
		return r.Amount
	}
	return decimal.NewFromInt(int64(r.Units))
}

// rankProducts filtra por monto, descarta ceros en ascendente, ordena (desempate por nombre) y corta en limit.
func rankProducts(rows []repository.ProductMetricRow, q topQuery) []repository.ProductMetricRow {
	out := make([]repository.ProductMetricRow, 0, len(rows))
	for _, r := range rows {
		v := metricValue(r, q.metric)
		if q.metric == MetricAmount {
			if q.minAmount != nil && v.LessThan(*q.minAmount) {
				continue
			}
			if q.maxAmount != nil && v.GreaterThan(*q.maxAmount) {
				continue
			}
		}
		if q.order == OrderAsc && v.IsZero() {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := metricValue(out[i], q.metric), metricValue(out[j], q.metric)
		if !vi.Equal(vj) {
			if q.order == OrderAsc {
				return vi.LessThan(vj)
			}
			return vi.GreaterThan(vj)
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > q.limit {
		out = out[:q.limit]
	}
	return out
}
