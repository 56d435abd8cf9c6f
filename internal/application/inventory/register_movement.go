package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) ([]dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:       userID,
		VariantID:    strings.TrimSpace(in.VariantID),
		BranchID:     strings.TrimSpace(in.BranchID),
		FromBranchID: strings.TrimSpace(in.FromBranchID),
		ToBranchID:   strings.TrimSpace(in.ToBranchID),
		Type:         strings.ToLower(strings.TrimSpace(in.Type)),
		Quantity:     in.Quantity,
		Notes:        in.Notes,
	})
}
