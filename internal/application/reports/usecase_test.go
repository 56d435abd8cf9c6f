package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	t     *testing.T
	store *memory.Store
	uc    *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store := memory.New()
	uc := NewUseCase(store.Reports(), nil, 0, logger.Nop())
	uc.now = func() time.Time { return now }
	return &fixture{t: t, store: store, uc: uc}
}

// product crea un producto con una variante y devuelve el id de la variante.
func (f *fixture) product(name, categoryID string) string {
	f.t.Helper()
	ctx := context.Background()
	p := &entity.Product{ID: uuid.NewString(), CategoryID: categoryID, Name: name, Status: entity.ProductStatusActive}
	require.NoError(f.t, f.store.Products().Create(ctx, p))
	v := &entity.Variant{ID: uuid.NewString(), ProductID: p.ID, Code: "SKU-" + p.ID[:8]}
	require.NoError(f.t, f.store.Variants().Create(ctx, v))
	return v.ID
}

type line struct {
	variantID string
	qty       int
	price     int64
}

// sale registra una venta con sus líneas; settled=false la deja pendiente.
func (f *fixture) sale(at time.Time, channel, paymentType string, settled bool, lines ...line) string {
	f.t.Helper()
	ctx := context.Background()
	s := &entity.Sale{
		ID:            uuid.NewString(),
		CustomerID:    "c1",
		BranchID:      "b1",
		Channel:       channel,
		PaymentType:   paymentType,
		Status:        entity.SaleStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     at,
	}
	if settled {
		s.Status, s.PaymentStatus = entity.SaleStatusCompleted, entity.PaymentStatusPaid
	}
	require.NoError(f.t, f.store.Sales().Create(ctx, s))
	total := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromInt(l.price)
		sub := price.Mul(decimal.NewFromInt(int64(l.qty)))
		require.NoError(f.t, f.store.Sales().AddLine(ctx, &entity.SaleLine{
			ID: uuid.NewString(), SaleID: s.ID, VariantID: l.variantID, Quantity: l.qty, UnitPrice: price, Subtotal: sub,
		}))
		total = total.Add(sub)
	}
	require.NoError(f.t, f.store.Sales().UpdateTotal(ctx, s.ID, total))
	return s.ID
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

type fakeCache struct {
	stored map[string]any
	sets   int
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.stored[key]
	if !ok {
		return false, nil
	}
	*dest.(*dto.SummaryResponse) = *v.(*dto.SummaryResponse)
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.stored[key] = value
	c.sets++
	return nil
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, *Report) ([]byte, error) {
	return nil, errors.New("sin fuentes")
}
func (failingRenderer) ContentType() string { return "application/pdf" }
func (failingRenderer) Extension() string   { return "pdf" }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDailySeries_SparseBuckets(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	v := f.product("Blusa", "")
	f.sale(date(2024, 1, 1), entity.ChannelStore, entity.PaymentTypeCash, true, line{v, 1, 100})
	f.sale(date(2024, 1, 3), entity.ChannelStore, entity.PaymentTypeCash, true, line{v, 2, 100})
	f.sale(date(2024, 1, 3), entity.ChannelOnline, entity.PaymentTypeQR, false, line{v, 5, 100})

	res, err := f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{Start: "2024-01-01", End: "2024-01-03"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", res.Start)
	assert.Equal(t, "2024-01-03", res.End)
	require.Len(t, res.Days, 2)
	assert.Equal(t, "2024-01-01", res.Days[0].Day)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Days[0].Total))
	assert.Equal(t, "2024-01-03", res.Days[1].Day)
	assert.Equal(t, 1, res.Days[1].Count, "la venta pendiente no cuenta")
}

func TestDailySeries_WindowResolution(t *testing.T) {
	f := newFixture(t, date(2024, 3, 15))

	res, err := f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-14", res.Start)
	assert.Equal(t, "2024-03-15", res.End)

	res, err = f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", res.Start)

	res, err = f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{Start: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", res.End)

	res, err = f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{End: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "2023-03-02", res.Start)

	_, err = f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{Start: "01/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.DailySeries(context.Background(), dto.DailySeriesRequest{Start: "2024-03-05", End: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTopProducts_AscendingDropsZeroUnits(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	a, b, c := f.product("Abrigo", ""), f.product("Bufanda", ""), f.product("Cartera", "")
	f.sale(date(2024, 1, 2), entity.ChannelStore, entity.PaymentTypeCash, true,
		line{a, 3, 10}, line{b, 1, 50}, line{c, 0, 20})

	res, err := f.uc.TopProducts(context.Background(), dto.TopProductsRequest{Order: OrderAsc})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Bufanda", res.Items[0].ProductName)
	assert.Equal(t, 1, res.Items[0].Rank)
	assert.Equal(t, "Abrigo", res.Items[1].ProductName)
	assert.Equal(t, MetricUnits, res.Metric)
}

func TestTopProducts_DescendingByAmountWithFilters(t *testing.T) {
	f := newFixture(t, date(2024, 6, 30))
	a, b, c := f.product("Vestido Lino", ""), f.product("Camisa", ""), f.product("Campera Ñandú", "")
	f.sale(date(2024, 4, 2), entity.ChannelStore, entity.PaymentTypeCash, true, line{a, 1, 300}, line{b, 2, 100})
	f.sale(date(2024, 4, 9), entity.ChannelOnline, entity.PaymentTypeQR, true, line{c, 1, 500})
	f.sale(date(2024, 7, 1), entity.ChannelStore, entity.PaymentTypeCash, true, line{b, 10, 100})

	res, err := f.uc.TopProducts(context.Background(), dto.TopProductsRequest{
		Metric:  MetricAmount,
		Season:  "Otoño",
		Exclude: " campera  ÑANDU ",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Vestido Lino", res.Items[0].ProductName)
	assert.Equal(t, "Camisa", res.Items[1].ProductName)

	res, err = f.uc.TopProducts(context.Background(), dto.TopProductsRequest{Metric: MetricAmount, MinAmount: "400"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Camisa", res.Items[0].ProductName)
	assert.Equal(t, "Campera Ñandú", res.Items[1].ProductName)

	res, err = f.uc.TopProducts(context.Background(), dto.TopProductsRequest{Channel: entity.ChannelOnline})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Campera Ñandú", res.Items[0].ProductName)

	res, err = f.uc.TopProducts(context.Background(), dto.TopProductsRequest{MinUnitPrice: "200", Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Campera Ñandú", res.Items[0].ProductName)
}

func TestTopProducts_InvalidParams(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	ctx := context.Background()

	for _, in := range []dto.TopProductsRequest{
		{Metric: "ganancia"},
		{Order: "random"},
		{Season: "monzón"},
		{Month: 13},
		{MinUnitPrice: "abc"},
		{Start: "2024/01/01"},
	} {
		_, err := f.uc.TopProducts(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestForecast_SameWeekdayHeuristic(t *testing.T) {
	// 2024-01-29 es lunes; ventas los lunes 1, 8, 15 y 22 de enero.
	f := newFixture(t, date(2024, 1, 20))
	p, q := f.product("Remera", ""), f.product("Gorro", "")
	f.sale(date(2024, 1, 1), entity.ChannelStore, entity.PaymentTypeCash, true, line{p, 2, 10})
	f.sale(date(2024, 1, 8), entity.ChannelOnline, entity.PaymentTypeQR, false, line{p, 3, 10})
	f.sale(date(2024, 1, 15), entity.ChannelStore, entity.PaymentTypeCash, true, line{p, 4, 10})
	f.sale(date(2024, 1, 22), entity.ChannelStore, entity.PaymentTypeCash, true, line{q, 1, 10})
	f.sale(date(2024, 1, 23), entity.ChannelStore, entity.PaymentTypeCash, true, line{q, 9, 10})

	res, err := f.uc.Forecast(context.Background(), dto.ForecastRequest{Date: "2024-01-29"})
	require.NoError(t, err)

	assert.Equal(t, "Lunes", res.Weekday)
	assert.Equal(t, 4, res.Occurrences)
	assert.Equal(t, 2, res.TotalProducts)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "Remera", res.Items[0].ProductName)
	assert.Equal(t, 3, res.Items[0].EstimatedUnits)
	assert.Equal(t, 75, res.Items[0].Confidence)
	assert.Equal(t, 3, res.Items[0].TimesSold)
	assert.InDelta(t, 3.0, res.Items[0].Average, 0.001)

	assert.Equal(t, "Gorro", res.Items[1].ProductName)
	assert.Equal(t, 1, res.Items[1].EstimatedUnits)
	assert.Equal(t, 25, res.Items[1].Confidence)
}

func TestForecast_CountsSalesNotLines(t *testing.T) {
	f := newFixture(t, date(2024, 1, 20))
	p := f.product("Remera", "")
	f.sale(date(2024, 1, 22), entity.ChannelStore, entity.PaymentTypeCash, true, line{p, 2, 10}, line{p, 4, 10})

	res, err := f.uc.Forecast(context.Background(), dto.ForecastRequest{Date: "2024-01-29"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].TimesSold, "dos líneas de la misma venta cuentan una vez")
	assert.Equal(t, 6, res.Items[0].EstimatedUnits)
	assert.Equal(t, 25, res.Items[0].Confidence)
}

func TestForecast_InvalidDate(t *testing.T) {
	f := newFixture(t, date(2024, 1, 20))
	for _, in := range []string{"29-01-2024", "2024-02-30", "mañana"} {
		_, err := f.uc.Forecast(context.Background(), dto.ForecastRequest{Date: in})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in)
	}
}

func TestForecast_DefaultsToTomorrow(t *testing.T) {
	f := newFixture(t, date(2024, 1, 20))
	res, err := f.uc.Forecast(context.Background(), dto.ForecastRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-21", res.Date)
	assert.Equal(t, "Domingo", res.Weekday)
	assert.Empty(t, res.Items)
}

func TestSummary_SettledOnlyAndCached(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	cache := &fakeCache{stored: map[string]any{}}
	f.uc.cache, f.uc.cacheTTL = cache, time.Minute

	v := f.product("Blusa", "")
	f.sale(date(2024, 1, 9), entity.ChannelStore, entity.PaymentTypeCash, true, line{v, 1, 100})
	f.sale(date(2023, 6, 1), entity.ChannelOnline, entity.PaymentTypeQR, true, line{v, 1, 300})
	f.sale(date(2024, 1, 9), entity.ChannelOnline, entity.PaymentTypeQR, false, line{v, 1, 999})

	ctx := context.Background()
	res, err := f.uc.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(400).Equal(res.Overall.Total))
	assert.Equal(t, 2, res.Overall.Count)
	assert.InDelta(t, 200.0, res.Overall.AverageTicket, 0.001)
	assert.Equal(t, 1, res.Last30Days.Count)
	require.Len(t, res.ByChannel, 2)
	assert.Equal(t, entity.ChannelOnline, res.ByChannel[0].Key)
	assert.Equal(t, 1, res.Products)
	assert.Equal(t, 1, res.Variants)
	assert.Equal(t, 1, cache.sets)

	f.sale(date(2024, 1, 9), entity.ChannelStore, entity.PaymentTypeCash, true, line{v, 1, 100})
	again, err := f.uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Overall.Count, "dentro del TTL se sirve desde caché")
	assert.Equal(t, 1, cache.sets)
}

func TestLowStock_AggregatesPerProduct(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	ctx := context.Background()
	a, b := f.product("Abrigo", ""), f.product("Bufanda", "")
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: a, BranchID: "b1", Quantity: 3}))
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: a, BranchID: "b2", Quantity: 1}))
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: b, BranchID: "b1", Quantity: 2}))
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: b, BranchID: "b2", Quantity: 40}))

	res, err := f.uc.LowStock(ctx, dto.LowStockRequest{})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Bufanda", res[0].ProductName)
	assert.Equal(t, 2, res[0].Units)
	assert.Equal(t, "Abrigo", res[1].ProductName)
	assert.Equal(t, 4, res[1].Units)

	neg := -1
	_, err = f.uc.LowStock(ctx, dto.LowStockRequest{Threshold: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock_ZeroThresholdListsOnlyOutOfStock(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	ctx := context.Background()
	a, b := f.product("Blusa", ""), f.product("Camisa", "")
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: a, BranchID: "b1", Quantity: 3}))
	require.NoError(t, f.store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: b, BranchID: "b1", Quantity: 0}))

	zero := 0
	res, err := f.uc.LowStock(ctx, dto.LowStockRequest{Threshold: &zero})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Camisa", res[0].ProductName)
	assert.Equal(t, 0, res[0].Units)

	one := 1
	res, err = f.uc.LowStock(ctx, dto.LowStockRequest{Threshold: &one})
	require.NoError(t, err)
	assert.Len(t, res, 1, "la blusa con 3 unidades supera el umbral")
}

func TestExport_FallsBackToText(t *testing.T) {
	f := newFixture(t, date(2024, 1, 10))
	v := f.product("Blusa", "")
	f.sale(date(2024, 1, 9), entity.ChannelStore, entity.PaymentTypeCash, true, line{v, 2, 100})
	ctx := context.Background()

	file, err := f.uc.Export(ctx, FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", file.ContentType)
	assert.Equal(t, "reporte_ventas_20240110_1200.txt", file.FileName)
	assert.Contains(t, string(file.Content), "Blusa")
	assert.Contains(t, string(file.Content), "200.00")

	f.uc.RegisterRenderer(FormatPDF, failingRenderer{})
	file, err = f.uc.Export(ctx, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "txt", file.FileName[len(file.FileName)-3:])

	_, err = f.uc.Export(ctx, "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
