package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ConfirmPayment marca la venta como completada y pagada. Tras el commit avisa al cliente por push
// si existe un usuario con su email y token; ese aviso nunca hace fallar la confirmación.
func (uc *UseCase) ConfirmPayment(ctx context.Context, saleID string) (*dto.ConfirmPaymentResponse, error) {
	saleID = strings.TrimSpace(saleID)
	if saleID == "" {
		return nil, domain.Invalid("id de venta requerido")
	}

	var (
		sale       *entity.Sale
		customer   *entity.Customer
		transition bool
	)
	err := uc.tx.RunCheckout(ctx, func(r Repos) error {
		s, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("venta %s", saleID)
		}
		transition = !s.IsSettled()
		if transition {
			if err := r.Sales.UpdateStatus(ctx, s.ID, entity.SaleStatusCompleted, entity.PaymentStatusPaid); err != nil {
				return err
			}
			s.Status, s.PaymentStatus = entity.SaleStatusCompleted, entity.PaymentStatusPaid
		}
		sale = s
		customer, err = r.Customers.GetByID(ctx, s.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if transition {
		uc.log.Info().Str("venta_id", sale.ID).Msg("pago confirmado")
		uc.notifyPaymentConfirmed(ctx, sale, customer)
	}
	return &dto.ConfirmPaymentResponse{
		SaleID:        sale.ID,
		Status:        sale.Status,
		PaymentStatus: sale.PaymentStatus,
	}, nil
}

func (uc *UseCase) notifyPaymentConfirmed(ctx context.Context, sale *entity.Sale, customer *entity.Customer) {
	if uc.notifier == nil || customer == nil || customer.Email == "" {
		return
	}
	user, err := uc.users.GetByEmail(ctx, customer.Email)
	if err != nil {
		uc.log.Warn().Err(err).Str("venta_id", sale.ID).Msg("buscar usuario para notificar")
		return
	}
	if user == nil || strings.TrimSpace(user.FCMToken) == "" {
		return
	}
	uc.notifier.Dispatch(strings.TrimSpace(user.FCMToken), PaymentConfirmedNotification(sale.ID))
}

// PaymentConfirmedNotification contenido del aviso de pago confirmado.
func PaymentConfirmedNotification(saleID string) notify.Notification {
	return notify.Notification{
		Title: "Pago confirmado ✅",
		Body:  fmt.Sprintf("Tu pedido #%s fue confirmado. ¡Gracias por tu compra!", saleID),
		Data: map[string]string{
			"venta_id": saleID,
			"tipo":     "confirmacion_pago",
		},
	}
}
