package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de stock (entrada, salida, ajuste, transferencia)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// MovementInputDTO entrada para registrar un movimiento.
// Para entrada/salida/ajuste: VariantID, BranchID, Type, Quantity.
// Para transferencia: VariantID, FromBranchID, ToBranchID, Quantity.
type MovementInputDTO struct {
	UserID       string
	VariantID    string
	BranchID     string
	FromBranchID string
	ToBranchID   string
	Type         string
	Quantity     int
	Notes        string
}

func (in MovementInputDTO) validate() error {
	if in.VariantID == "" {
		return domain.Invalid("variant_id requerido")
	}
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.BranchID == "" || in.Quantity <= 0 {
			return domain.Invalid("branch_id y quantity > 0 requeridos")
		}
	case entity.MovementTypeAdjust:
		if in.BranchID == "" || in.Quantity < 0 {
			return domain.Invalid("branch_id y quantity >= 0 requeridos")
		}
	case entity.MovementTypeTransfer:
		if in.FromBranchID == "" || in.ToBranchID == "" || in.FromBranchID == in.ToBranchID {
			return domain.Invalid("from_branch_id y to_branch_id distintos requeridos")
		}
		if in.Quantity <= 0 {
			return domain.Invalid("quantity debe ser mayor a 0")
		}
	default:
		return domain.Invalid("tipo de movimiento inválido: %q", in.Type)
	}
	return nil
}

// RegisterMovement valida, abre la transacción, bloquea las filas de stock involucradas y aplica el movimiento.
// Devuelve los movimientos registrados (dos en una transferencia).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) ([]dto.MovementResponse, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	var out []dto.MovementResponse

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		branchRepo repository.BranchRepository,
	) error {
		variant, err := variantRepo.GetByID(ctx, input.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.NotFound("variante %s", input.VariantID)
		}

		if input.Type == entity.MovementTypeTransfer {
			if err := lockTransferRows(ctx, stockRepo, branchRepo, input); err != nil {
				return err
			}
			ref := uuid.New().String()
			outMov, err := uc.apply(ctx, stockRepo, movRepo, branchRepo, input, variant.Code, input.FromBranchID, entity.MovementTypeOut, ref, now)
			if err != nil {
				return err
			}
			inMov, err := uc.apply(ctx, stockRepo, movRepo, branchRepo, input, variant.Code, input.ToBranchID, entity.MovementTypeIn, ref, now)
			if err != nil {
				return err
			}
			out = []dto.MovementResponse{toMovementResponse(outMov), toMovementResponse(inMov)}
			return nil
		}

		mov, err := uc.apply(ctx, stockRepo, movRepo, branchRepo, input, variant.Code, input.BranchID, input.Type, "", now)
		if err != nil {
			return err
		}
		out = []dto.MovementResponse{toMovementResponse(mov)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockTransferRows verifica ambas sucursales y bloquea sus filas en inventory.LockOrder,
// de modo que X→Y e Y→X concurrentes esperan en lugar de interbloquearse.
func lockTransferRows(
	ctx context.Context,
	stockRepo repository.StockRepository,
	branchRepo repository.BranchRepository,
	input MovementInputDTO,
) error {
	keys := make([]inventory.StockKey, 0, 2)
	for _, branchID := range []string{input.FromBranchID, input.ToBranchID} {
		branch, err := branchRepo.GetByID(ctx, branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return domain.NotFound("sucursal %s", branchID)
		}
		keys = append(keys, inventory.StockKey{VariantID: input.VariantID, BranchID: branchID})
	}
	for _, k := range inventory.LockOrder(keys) {
		if _, err := stockRepo.GetForUpdate(ctx, k.VariantID, k.BranchID); err != nil {
			return err
		}
	}
	return nil
}

// apply bloquea la fila (GetForUpdate), calcula la nueva cantidad, la guarda y registra el movimiento.
func (uc *RegisterMovementUseCase) apply(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	branchRepo repository.BranchRepository,
	input MovementInputDTO,
	variantCode, branchID, movementType, reference string,
	now time.Time,
) (*entity.StockMovement, error) {
	branch, err := branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.NotFound("sucursal %s", branchID)
	}

	stock, err := stockRepo.GetForUpdate(ctx, input.VariantID, branchID)
	if err != nil {
		return nil, err
	}
	before := stock.Quantity
	after, err := inventory.ApplyMovement(before, movementType, input.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.InsufficientStockError{
				Product:   variantCode,
				Branch:    branch.Name,
				Available: before,
				Requested: input.Quantity,
			}
		}
		return nil, err
	}
	stock.Quantity = after
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return nil, err
	}

	typ := movementType
	if input.Type == entity.MovementTypeTransfer {
		typ = entity.MovementTypeTransfer
	}
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		VariantID:      input.VariantID,
		BranchID:       branchID,
		Type:           typ,
		Quantity:       input.Quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      reference,
		Notes:          input.Notes,
		CreatedBy:      input.UserID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		VariantID:      m.VariantID,
		BranchID:       m.BranchID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}
