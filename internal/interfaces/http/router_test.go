package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/internal/application/reports"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/boutique-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/boutique-api/pkg/jwt"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const (
	centroID = "suc-centro"
	blusaID  = "prod-blusa"
	blusaM   = "var-blusa-m"
)

type nopNotifier struct{}

func (nopNotifier) Dispatch(string, notify.Notification) {}

type nopSender struct{}

func (nopSender) Send(context.Context, string, notify.Notification) (string, error) { return "ok", nil }

// newAPI arma la API completa sobre un store en memoria con la sucursal Centro y la Blusa M (stock 3).
func newAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Branches().Create(ctx, &entity.Branch{ID: centroID, Name: "Centro"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: blusaID, Name: "Blusa"}))
	require.NoError(t, store.Variants().Create(ctx, &entity.Variant{ID: blusaM, ProductID: blusaID, Code: "BLU-M"}))
	require.NoError(t, store.Stock().Upsert(ctx, &entity.StockEntry{VariantID: blusaM, BranchID: centroID, Quantity: 3}))
	for _, r := range []*entity.Role{
		{ID: "r1", Name: entity.RoleAdmin, Permissions: []string{entity.PermissionAll}},
		{ID: "r2", Name: entity.RoleVendedor},
		{ID: "r3", Name: entity.RoleCliente},
	} {
		require.NoError(t, store.Roles().Create(ctx, r))
	}

	log := logger.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(store.Users(), store.Roles(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CategoryUC:       usecase.NewCategoryUseCase(store.Categories()),
		ProductUC:        usecase.NewProductUseCase(store.Products(), store.Variants(), store.Images(), store.Categories(), nil),
		BranchUC:         usecase.NewBranchUseCase(store.Branches()),
		CustomerUC:       usecase.NewCustomerUseCase(store.Customers()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store),
		StockQuery:       inventory.NewStockQueryUseCase(store.Stock(), store.Movements(), store.Branches()),
		CheckoutUC: checkout.NewUseCase(store, store.Users(), nopNotifier{}, checkout.Config{
			PrimaryBranchID: centroID,
			WalkInEmail:     "mostrador@local",
			WalkInName:      "Mostrador",
			OnlineEmail:     "online@cliente",
			OnlineName:      "Cliente Online",
		}, log),
		SalesUC:     sales.NewUseCase(store.Sales(), store.Customers(), store.Variants(), store.Products()),
		ReportsUC:   reports.NewUseCase(store.Reports(), nil, time.Minute, log),
		BroadcastUC: notify.NewBroadcastUseCase(store.Users(), store.Roles(), nopSender{}, log),
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e.Code
}

func qty(n int) *int { return &n }

// tokenFor firma un token para un email y rol concretos.
func tokenFor(t *testing.T, email, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: "u-" + role, Email: email, Name: "Sofía", Role: role}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ── Health y auth ─────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := newAPI(t)
	resp, raw := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "ok")
}

func TestAuth_RegistroLoginYMe(t *testing.T) {
	app, _ := newAPI(t)

	resp, raw := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "Lucia@Mail.com", Password: "secreta1", Name: "Lucía", Role: entity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "lucia@mail.com", user.Email)
	assert.Equal(t, entity.RoleCliente, user.Role, "un anónimo no puede elegir rol")

	resp, raw = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "lucia@mail.com", Password: "otra123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, raw))

	resp, raw = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "lucia@mail.com", Password: "secreta1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	require.NotEmpty(t, login.Token)

	resp, raw = call(t, app, http.MethodGet, "/api/usuarios/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, user.ID, me.ID)
	assert.False(t, me.HasToken)

	resp, _ = call(t, app, http.MethodPut, "/api/usuarios/me/fcm-token", "Bearer "+login.Token, dto.UpdateFCMTokenRequest{Token: "tok-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, raw = call(t, app, http.MethodGet, "/api/usuarios/me", "Bearer "+login.Token, nil)
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.True(t, me.HasToken)
}

func TestAuth_AdminRegistraVendedor(t *testing.T) {
	app, _ := newAPI(t)
	resp, raw := call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), dto.RegisterRequest{
		Email: "vende@boutique.test", Password: "secreta1", Role: entity.RoleVendedor,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, entity.RoleVendedor, user.Role)
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	app, _ := newAPI(t)
	call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "a@b.co", Password: "secreta1"})

	for name, in := range map[string]dto.LoginRequest{
		"password incorrecta": {Email: "a@b.co", Password: "otra-cosa"},
		"usuario inexistente": {Email: "nadie@b.co", Password: "secreta1"},
	} {
		t.Run(name, func(t *testing.T) {
			resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", in)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, raw))
		})
	}
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func TestVentas_POSDescuentaStockYRechazaFaltante(t *testing.T) {
	app, store := newAPI(t)
	vendedor := tokenForRole(t, entity.RoleVendedor)

	resp, raw := call(t, app, http.MethodPost, "/api/ventas/pos", vendedor, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM, Quantity: qty(2)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)

	resp, raw = call(t, app, http.MethodPost, "/api/ventas/pos", vendedor, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM, Quantity: qty(2)}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, raw))

	st, err := store.Stock().Get(context.Background(), blusaM, centroID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Quantity, "la venta rechazada no descuenta stock")

	resp, raw = call(t, app, http.MethodGet, "/api/ventas/"+sale.SaleID, vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.SaleResponse
	require.NoError(t, json.Unmarshal(raw, &detail))
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "Blusa", detail.Lines[0].ProductName)
}

func TestVentas_POSCarritoVacio(t *testing.T) {
	app, _ := newAPI(t)
	resp, raw := call(t, app, http.MethodPost, "/api/ventas/pos", tokenForRole(t, entity.RoleAdmin), dto.CheckoutRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestVentas_ClienteNoUsaPOS(t *testing.T) {
	app, _ := newAPI(t)
	resp, _ := call(t, app, http.MethodPost, "/api/ventas/pos", tokenForRole(t, entity.RoleCliente), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVentas_OnlinePendienteYConfirmacion(t *testing.T) {
	app, _ := newAPI(t)

	resp, raw := call(t, app, http.MethodPost, "/api/ventas/online", tokenForRole(t, entity.RoleCliente), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM, Quantity: qty(10)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.Equal(t, entity.PaymentStatusPending, sale.PaymentStatus)

	resp, _ = call(t, app, http.MethodPost, "/api/ventas/"+sale.SaleID+"/confirmar-pago", tokenForRole(t, entity.RoleCliente), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el cliente no confirma pagos")

	for i := 0; i < 2; i++ {
		resp, raw = call(t, app, http.MethodPost, "/api/ventas/"+sale.SaleID+"/confirmar-pago", tokenForRole(t, entity.RoleVendedor), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var confirmed dto.ConfirmPaymentResponse
		require.NoError(t, json.Unmarshal(raw, &confirmed))
		assert.Equal(t, entity.PaymentStatusPaid, confirmed.PaymentStatus)
	}

	resp, raw = call(t, app, http.MethodPost, "/api/ventas/no-existe/confirmar-pago", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

func TestVentas_OnlineClienteCompraASuNombre(t *testing.T) {
	app, store := newAPI(t)
	ctx := context.Background()

	resp, raw := call(t, app, http.MethodPost, "/api/ventas/online", tokenFor(t, "sofia@mail.com", entity.RoleCliente), dto.CheckoutRequest{
		CustomerEmail: "otra@mail.com",
		CustomerName:  "Otra Persona",
		Items:         []dto.CheckoutItemRequest{{VariantID: blusaM}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(raw, &sale))

	own, err := store.Customers().GetByEmail(ctx, "sofia@mail.com")
	require.NoError(t, err)
	_, err = store.Customers().GetByEmail(ctx, "otra@mail.com")
	assert.Error(t, err, "no se crea cliente para un email ajeno")

	resp, raw = call(t, app, http.MethodGet, "/api/ventas/"+sale.SaleID, tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.SaleResponse
	require.NoError(t, json.Unmarshal(raw, &detail))
	assert.Equal(t, own.ID, detail.CustomerID)
}

func TestVentas_ClienteSoloVeLasSuyas(t *testing.T) {
	app, _ := newAPI(t)
	call(t, app, http.MethodPost, "/api/ventas/pos", tokenForRole(t, entity.RoleVendedor), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM}},
	})

	resp, raw := call(t, app, http.MethodGet, "/api/ventas", tokenForRole(t, entity.RoleCliente), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SaleListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list.Items)

	resp, raw = call(t, app, http.MethodGet, "/api/ventas", tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Items, 1)
}

// ── Inventario ────────────────────────────────────────────────────────────────

func TestInventario_MovimientoYConsulta(t *testing.T) {
	app, _ := newAPI(t)
	vendedor := tokenForRole(t, entity.RoleVendedor)

	resp, raw := call(t, app, http.MethodPost, "/api/inventario/movimientos", vendedor, dto.RegisterMovementRequest{
		VariantID: blusaM, BranchID: centroID, Type: entity.MovementTypeIn, Quantity: 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/inventario/stock/"+centroID, vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock []dto.StockResponse
	require.NoError(t, json.Unmarshal(raw, &stock))
	require.Len(t, stock, 1)
	assert.Equal(t, 7, stock[0].Quantity)

	resp, raw = call(t, app, http.MethodGet, "/api/inventario/variantes/"+blusaM+"/movimientos", vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &movs))
	require.Len(t, movs, 1)
	assert.Equal(t, 3, movs[0].QuantityBefore)
	assert.Equal(t, 7, movs[0].QuantityAfter)
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func TestCatalogo_SoloAdminEscribe(t *testing.T) {
	app, _ := newAPI(t)
	body := dto.CreateCategoryRequest{Name: "Vestidos"}

	resp, _ := call(t, app, http.MethodPost, "/api/categorias", tokenForRole(t, entity.RoleVendedor), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/categorias", tokenForRole(t, entity.RoleAdmin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/categorias", tokenForRole(t, entity.RoleCliente), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(raw, &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "Vestidos", cats[0].Name)
}

func TestCatalogo_ProductoInexistente(t *testing.T) {
	app, _ := newAPI(t)
	resp, raw := call(t, app, http.MethodGet, "/api/productos/no-existe", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

// ── Reportes y notificaciones ─────────────────────────────────────────────────

func TestReportes_SoloAdmin(t *testing.T) {
	app, _ := newAPI(t)
	resp, _ := call(t, app, http.MethodGet, "/api/reportes/resumen", tokenForRole(t, entity.RoleVendedor), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	call(t, app, http.MethodPost, "/api/ventas/pos", tokenForRole(t, entity.RoleVendedor), dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{VariantID: blusaM, Quantity: qty(2)}},
	})
	resp, raw := call(t, app, http.MethodGet, "/api/reportes/resumen", tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var summary dto.SummaryResponse
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.Overall.Count)
	assert.Equal(t, 1, summary.Products)
}

func TestReportes_StockBajoUmbralCero(t *testing.T) {
	app, _ := newAPI(t)
	admin := tokenForRole(t, entity.RoleAdmin)

	resp, raw := call(t, app, http.MethodGet, "/api/reportes/stock-bajo?umbral=0", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var low []dto.LowStockDTO
	require.NoError(t, json.Unmarshal(raw, &low))
	assert.Empty(t, low, "la Blusa tiene 3 unidades, no está agotada")

	_, raw = call(t, app, http.MethodGet, "/api/reportes/stock-bajo", admin, nil)
	require.NoError(t, json.Unmarshal(raw, &low))
	require.Len(t, low, 1)
	assert.Equal(t, 3, low[0].Units)
}

func TestReportes_FechaInvalida(t *testing.T) {
	app, _ := newAPI(t)
	resp, raw := call(t, app, http.MethodGet, "/api/reportes/prediccion?fecha=15-10-2026", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestReportes_ExportarTexto(t *testing.T) {
	app, _ := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/reportes/exportar?formato=txt", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment;")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".txt")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "REPORTE DE VENTAS")
}

func TestReportes_FormatoNoSoportado(t *testing.T) {
	app, _ := newAPI(t)
	resp, _ := call(t, app, http.MethodGet, "/api/reportes/exportar?formato=docx", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificaciones_VendedorSinPermiso(t *testing.T) {
	app, _ := newAPI(t)
	body := dto.GlobalNotificationRequest{Title: "Rebajas", Body: "30% en vestidos"}

	resp, _ := call(t, app, http.MethodPost, "/api/notificaciones/global", tokenForRole(t, entity.RoleVendedor), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/notificaciones/global", tokenForRole(t, entity.RoleAdmin), body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.GlobalNotificationResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 0, out.Total)
}
