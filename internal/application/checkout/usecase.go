package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/domain/sales"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// UseCase convierte un carrito en una venta con sus líneas y el stock descontado, todo en una transacción.
type UseCase struct {
	tx       TxRunner
	users    repository.UserRepository
	notifier Notifier
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso de checkout.
func NewUseCase(tx TxRunner, users repository.UserRepository, notifier Notifier, cfg Config, log *logger.Logger) *UseCase {
	if cfg.OnlineStockPolicy == "" {
		cfg.OnlineStockPolicy = StockPolicyDeferred
	}
	return &UseCase{
		tx:       tx,
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		log:      log.Component("checkout"),
		now:      time.Now,
	}
}

// mode diferencias entre checkout en tienda y online.
type mode struct {
	channel            string
	defaultPaymentType string
	walkInEmail        string
	walkInName         string
	placeholderPrefix  string
	placeholderModel   string
	checkStock         bool
}

func (uc *UseCase) storeMode() mode {
	return mode{
		channel:            entity.ChannelStore,
		defaultPaymentType: entity.PaymentTypeCash,
		walkInEmail:        uc.cfg.WalkInEmail,
		walkInName:         uc.cfg.WalkInName,
		placeholderPrefix:  "POS",
		placeholderModel:   "POS",
		checkStock:         true,
	}
}

func (uc *UseCase) onlineMode() mode {
	return mode{
		channel:            entity.ChannelOnline,
		defaultPaymentType: entity.PaymentTypeQR,
		walkInEmail:        uc.cfg.OnlineEmail,
		walkInName:         uc.cfg.OnlineName,
		placeholderPrefix:  "ON",
		placeholderModel:   "ONLINE",
		checkStock:         uc.cfg.OnlineStockPolicy == StockPolicyEnforce,
	}
}

// CheckoutPOS venta en tienda: se liquida al crearla salvo pago "qr".
func (uc *UseCase) CheckoutPOS(ctx context.Context, caller dto.Identity, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	return uc.checkout(ctx, uc.storeMode(), caller, in)
}

// CheckoutOnline venta online: siempre queda pendiente de pago.
func (uc *UseCase) CheckoutOnline(ctx context.Context, caller dto.Identity, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	return uc.checkout(ctx, uc.onlineMode(), caller, in)
}

// moneyDecimals escala de las columnas de dinero (NUMERIC(12,2)).
const moneyDecimals = 2

// cartItem ítem validado, con defaults aplicados.
type cartItem struct {
	variantID string
	productID string
	quantity  int
	unitPrice decimal.Decimal
}

func validateItems(items []dto.CheckoutItemRequest) ([]cartItem, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("el carrito no tiene items")
	}
	out := make([]cartItem, 0, len(items))
	for i, it := range items {
		ci := cartItem{
			variantID: strings.TrimSpace(it.VariantID),
			productID: strings.TrimSpace(it.ProductID),
			quantity:  1,
			unitPrice: decimal.Zero,
		}
		if ci.variantID == "" && ci.productID == "" {
			return nil, domain.Invalid("item %d: se requiere variant_id o product_id", i+1)
		}
		if it.Quantity != nil {
			ci.quantity = *it.Quantity
		}
		if ci.quantity <= 0 {
			return nil, domain.Invalid("item %d: quantity debe ser mayor a 0", i+1)
		}
		if it.UnitPrice != nil {
			ci.unitPrice = *it.UnitPrice
		}
		if ci.unitPrice.IsNegative() {
			return nil, domain.Invalid("item %d: unit_price no puede ser negativo", i+1)
		}
		if !ci.unitPrice.Equal(ci.unitPrice.Round(moneyDecimals)) {
			return nil, domain.Invalid("item %d: unit_price admite como máximo %d decimales", i+1, moneyDecimals)
		}
		out = append(out, ci)
	}
	return out, nil
}

func (uc *UseCase) checkout(ctx context.Context, m mode, caller dto.Identity, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	items, err := validateItems(in.Items)
	if err != nil {
		return nil, err
	}
	branchID := strings.TrimSpace(in.BranchID)
	if branchID == "" {
		branchID = uc.cfg.PrimaryBranchID
	}
	if branchID == "" {
		return nil, domain.Invalid("branch_id requerido: no hay sucursal principal configurada")
	}
	paymentType := strings.ToLower(strings.TrimSpace(in.PaymentType))
	if paymentType == "" {
		paymentType = m.defaultPaymentType
	}

	var resp *dto.CheckoutResponse
	err = uc.tx.RunCheckout(ctx, func(r Repos) error {
		branch, err := r.Branches.GetByID(ctx, branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return domain.NotFound("sucursal %s", branchID)
		}
		customer, err := uc.resolveCustomer(ctx, r, m, caller, in)
		if err != nil {
			return err
		}

		now := uc.now()
		status, paymentStatus := sales.InitialState(m.channel, paymentType)
		sale := &entity.Sale{
			ID:            uuid.New().String(),
			CustomerID:    customer.ID,
			BranchID:      branch.ID,
			Total:         decimal.Zero,
			PaymentType:   paymentType,
			Channel:       m.channel,
			Status:        status,
			PaymentStatus: paymentStatus,
			CreatedAt:     now,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		resolved := make([]resolvedItem, 0, len(items))
		for _, it := range items {
			variant, product, err := uc.resolveVariant(ctx, r, m, it)
			if err != nil {
				return err
			}
			resolved = append(resolved, resolvedItem{cartItem: it, variant: variant, product: product})
		}
		if m.checkStock {
			if err := lockStockRows(ctx, r, branch.ID, resolved); err != nil {
				return err
			}
		}

		total := decimal.Zero
		lines := make([]dto.SaleLineResponse, 0, len(resolved))
		for _, it := range resolved {
			variant, product := it.variant, it.product
			if m.checkStock {
				if err := uc.decrementStock(ctx, r, variant, product, branch, it.quantity, sale.ID, caller.UserID, now); err != nil {
					return err
				}
			}
			line := &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				VariantID: variant.ID,
				Quantity:  it.quantity,
				UnitPrice: it.unitPrice,
				Subtotal:  it.unitPrice.Mul(decimal.NewFromInt(int64(it.quantity))).Round(moneyDecimals),
			}
			if err := r.Sales.AddLine(ctx, line); err != nil {
				return err
			}
			total = total.Add(line.Subtotal)
			lines = append(lines, dto.SaleLineResponse{
				ID:          line.ID,
				VariantID:   variant.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Subtotal:    line.Subtotal,
			})
		}

		if err := r.Sales.UpdateTotal(ctx, sale.ID, total); err != nil {
			return err
		}
		resp = &dto.CheckoutResponse{
			SaleID:        sale.ID,
			Total:         total,
			Status:        status,
			PaymentStatus: paymentStatus,
			Lines:         lines,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Info().Err(err).Str("canal", m.channel).Msg("checkout rechazado por stock")
		}
		return nil, err
	}

	uc.log.Info().
		Str("venta_id", resp.SaleID).
		Str("canal", m.channel).
		Str("total", resp.Total.String()).
		Int("lineas", len(resp.Lines)).
		Msg("venta registrada")
	return resp, nil
}

// resolvedItem ítem del carrito con su variante y producto ya resueltos.
type resolvedItem struct {
	cartItem
	variant *entity.Variant
	product *entity.Product
}

// lockStockRows bloquea las filas de stock del carrito en inventory.LockOrder antes de descontar.
func lockStockRows(ctx context.Context, r Repos, branchID string, items []resolvedItem) error {
	keys := make([]inventory.StockKey, 0, len(items))
	for _, it := range items {
		keys = append(keys, inventory.StockKey{VariantID: it.variant.ID, BranchID: branchID})
	}
	for _, k := range inventory.LockOrder(keys) {
		if _, err := r.Stock.GetForUpdate(ctx, k.VariantID, k.BranchID); err != nil {
			return err
		}
	}
	return nil
}

// decrementStock bloquea la fila de stock, valida y descuenta en la misma transacción.
func (uc *UseCase) decrementStock(
	ctx context.Context,
	r Repos,
	variant *entity.Variant,
	product *entity.Product,
	branch *entity.Branch,
	quantity int,
	saleID, userID string,
	now time.Time,
) error {
	stock, err := r.Stock.GetForUpdate(ctx, variant.ID, branch.ID)
	if err != nil {
		return err
	}
	before := stock.Quantity
	after, err := inventory.ApplyMovement(before, entity.MovementTypeSale, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return &domain.InsufficientStockError{
				Product:   product.Name,
				Branch:    branch.Name,
				Available: before,
				Requested: quantity,
			}
		}
		return err
	}
	stock.Quantity = after
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(ctx, stock); err != nil {
		return err
	}
	return r.Movements.Create(ctx, &entity.StockMovement{
		ID:             uuid.New().String(),
		VariantID:      variant.ID,
		BranchID:       branch.ID,
		Type:           entity.MovementTypeSale,
		Quantity:       quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      saleID,
		CreatedBy:      userID,
		CreatedAt:      now,
	})
}

// resolveCustomer en online, un usuario con rol cliente compra siempre a su propio nombre e ignora
// customer_id y customer_email. En el resto de casos: por id, por email (se crea si no existe)
// o el cliente por defecto del canal.
func (uc *UseCase) resolveCustomer(ctx context.Context, r Repos, m mode, caller dto.Identity, in dto.CheckoutRequest) (*entity.Customer, error) {
	if email := normalizeEmail(caller.Email); m.channel == entity.ChannelOnline && caller.Role == entity.RoleCliente && email != "" {
		return uc.getOrCreateCustomer(ctx, r, email, strings.TrimSpace(caller.Name))
	}
	if id := strings.TrimSpace(in.CustomerID); id != "" {
		c, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.NotFound("cliente %s", id)
		}
		return c, nil
	}

	email, name := normalizeEmail(in.CustomerEmail), strings.TrimSpace(in.CustomerName)
	if email == "" {
		email, name = normalizeEmail(m.walkInEmail), m.walkInName
	}
	return uc.getOrCreateCustomer(ctx, r, email, name)
}

func (uc *UseCase) getOrCreateCustomer(ctx context.Context, r Repos, email, name string) (*entity.Customer, error) {
	if name == "" {
		name = email
	}
	return r.Customers.GetOrCreateByEmail(ctx, &entity.Customer{
		ID:        uuid.New().String(),
		FirstName: name,
		Email:     email,
		CreatedAt: uc.now(),
	})
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
