package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour

	summaryCacheKey        = "reportes:resumen"
	summaryLowStockLimit   = 10
	defaultLowStockUmbral  = 5
	defaultLowStockLimit   = 20
	defaultDailyWindowDays = 30
	maxLimit               = 100
)

// UseCase reportes de ventas. Salvo la predicción, solo cuentan ventas completadas y pagadas.
type UseCase struct {
	repo      repository.ReportRepository
	cache     Cache
	cacheTTL  time.Duration
	renderers map[string]Renderer
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewUseCase(repo repository.ReportRepository, cache Cache, cacheTTL time.Duration, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		renderers: make(map[string]Renderer),
		log:       log.Component("reports"),
		now:       time.Now,
	}
}

// RegisterRenderer habilita un formato de exportación (pdf, excel).
func (uc *UseCase) RegisterRenderer(format string, r Renderer) {
	uc.renderers[format] = r
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (uc *UseCase) today() time.Time {
	return startOfDay(uc.now())
}

func (uc *UseCase) parseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, uc.now().Location())
	if err != nil {
		return time.Time{}, domain.Invalid("%s inválido (formato YYYY-MM-DD): %q", field, s)
	}
	return t, nil
}

func toTotalsDTO(r repository.TotalsResult) dto.TotalsDTO {
	out := dto.TotalsDTO{Total: r.Total.Round(2), Count: r.Count}
	if r.Count > 0 {
		out.AverageTicket = r.Total.Div(decimal.NewFromInt(int64(r.Count))).Round(2).InexactFloat64()
	}
	return out
}

func toGroupDTOs(rows []repository.GroupTotal) []dto.GroupTotalDTO {
	out := make([]dto.GroupTotalDTO, 0, len(rows))
	for _, g := range rows {
		out = append(out, dto.GroupTotalDTO{Key: g.Key, Total: g.Total.Round(2), Count: g.Count})
	}
	return out
}

func toLowStockDTOs(rows []repository.LowStockRow) []dto.LowStockDTO {
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{ProductID: r.ProductID, ProductName: r.ProductName, Units: r.Units})
	}
	return out
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Summary totales generales y de los últimos 30 días, desglose por canal y tipo de pago, stock bajo y catálogo.
// Las consultas corren en paralelo; el resultado se cachea cacheTTL.
func (uc *UseCase) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	if uc.cache != nil {
		var cached dto.SummaryResponse
		hit, err := uc.cache.Get(ctx, summaryCacheKey, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de reportes no disponible")
		} else if hit {
			return &cached, nil
		}
	}

	from := uc.today().Add(-defaultDailyWindowDays * day)
	last30 := repository.Period{From: &from}

	type totalsResult struct {
		res repository.TotalsResult
		err error
	}
	type groupResult struct {
		rows []repository.GroupTotal
		err  error
	}
	type lowStockResult struct {
		rows []repository.LowStockRow
		err  error
	}
	type countsResult struct {
		products, variants int
		err                error
	}

	overallCh := make(chan totalsResult, 1)
	recentCh := make(chan totalsResult, 1)
	channelCh := make(chan groupResult, 1)
	paymentCh := make(chan groupResult, 1)
	lowCh := make(chan lowStockResult, 1)
	countsCh := make(chan countsResult, 1)

	go func() {
		r, err := uc.repo.Totals(ctx, repository.Period{})
		overallCh <- totalsResult{r, err}
	}()
	go func() {
		r, err := uc.repo.Totals(ctx, last30)
		recentCh <- totalsResult{r, err}
	}()
	go func() {
		rows, err := uc.repo.TotalsByChannel(ctx, repository.Period{})
		channelCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TotalsByPaymentType(ctx, repository.Period{})
		paymentCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.LowStock(ctx, defaultLowStockUmbral, summaryLowStockLimit)
		lowCh <- lowStockResult{rows, err}
	}()
	go func() {
		p, v, err := uc.repo.CatalogCounts(ctx)
		countsCh <- countsResult{p, v, err}
	}()

	overall, recent := <-overallCh, <-recentCh
	channels, payments := <-channelCh, <-paymentCh
	low, counts := <-lowCh, <-countsCh

	switch {
	case overall.err != nil:
		return nil, fmt.Errorf("resumen: totales: %w", overall.err)
	case recent.err != nil:
		return nil, fmt.Errorf("resumen: últimos 30 días: %w", recent.err)
	case channels.err != nil:
		return nil, fmt.Errorf("resumen: por canal: %w", channels.err)
	case payments.err != nil:
		return nil, fmt.Errorf("resumen: por tipo de pago: %w", payments.err)
	case low.err != nil:
		return nil, fmt.Errorf("resumen: stock bajo: %w", low.err)
	case counts.err != nil:
		return nil, fmt.Errorf("resumen: catálogo: %w", counts.err)
	}

	out := &dto.SummaryResponse{
		Overall:       toTotalsDTO(overall.res),
		Last30Days:    toTotalsDTO(recent.res),
		ByChannel:     toGroupDTOs(channels.rows),
		ByPaymentType: toGroupDTOs(payments.rows),
		LowStock:      toLowStockDTOs(low.rows),
		Products:      counts.products,
		Variants:      counts.variants,
	}
	if uc.cache != nil && uc.cacheTTL > 0 {
		if err := uc.cache.Set(ctx, summaryCacheKey, out, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear el resumen")
		}
	}
	return out, nil
}

// ── Serie diaria ──────────────────────────────────────────────────────────────

// resolveWindow devuelve [from, to) según los parámetros presentes.
func (uc *UseCase) resolveWindow(in dto.DailySeriesRequest) (time.Time, time.Time, error) {
	today := uc.today()
	switch {
	case in.Start != "" && in.End != "":
		start, err := uc.parseDate("start", in.Start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := uc.parseDate("end", in.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, domain.Invalid("end no puede ser anterior a start")
		}
		return start, end.AddDate(0, 0, 1), nil
	case in.Start != "":
		start, err := uc.parseDate("start", in.Start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, today.AddDate(0, 0, 1), nil
	case in.End != "":
		end, err := uc.parseDate("end", in.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return end.AddDate(0, 0, -365), end.AddDate(0, 0, 1), nil
	default:
		days := in.Days
		if days <= 0 {
			days = defaultDailyWindowDays
		}
		return today.AddDate(0, 0, -days), today.AddDate(0, 0, 1), nil
	}
}

// DailySeries total y cantidad por día con ventas, ascendente. Los días sin ventas no aparecen.
func (uc *UseCase) DailySeries(ctx context.Context, in dto.DailySeriesRequest) (*dto.DailySeriesResponse, error) {
	from, to, err := uc.resolveWindow(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.DailyTotals(ctx, repository.Period{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("serie diaria: %w", err)
	}
	points := make([]dto.DailyPointDTO, 0, len(rows))
	for _, r := range rows {
		points = append(points, dto.DailyPointDTO{Day: r.Day.Format(dateLayout), Total: r.Total.Round(2), Count: r.Count})
	}
	return &dto.DailySeriesResponse{
		Start: from.Format(dateLayout),
		End:   to.AddDate(0, 0, -1).Format(dateLayout),
		Days:  points,
	}, nil
}

// ── Tipos de pago y stock bajo ────────────────────────────────────────────────

// PaymentMix totales por tipo de pago, de mayor a menor.
func (uc *UseCase) PaymentMix(ctx context.Context) ([]dto.GroupTotalDTO, error) {
	rows, err := uc.repo.TotalsByPaymentType(ctx, repository.Period{})
	if err != nil {
		return nil, fmt.Errorf("tipos de pago: %w", err)
	}
	return toGroupDTOs(rows), nil
}

// LowStock productos con filas de stock <= umbral, de menos a más unidades. Umbral 0 lista solo los agotados.
func (uc *UseCase) LowStock(ctx context.Context, in dto.LowStockRequest) ([]dto.LowStockDTO, error) {
	threshold, limit := defaultLowStockUmbral, in.Limit
	if in.Threshold != nil {
		threshold = *in.Threshold
	}
	if threshold < 0 {
		return nil, domain.Invalid("umbral no puede ser negativo")
	}
	if limit <= 0 {
		limit = defaultLowStockLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	rows, err := uc.repo.LowStock(ctx, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	return toLowStockDTOs(rows), nil
}
