package sales

import (
	"strings"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// InitialState devuelve (estado, estado_pago) con que se crea una venta.
// En tienda se liquida de inmediato salvo pago por QR (sin distinguir mayúsculas), que queda pendiente de confirmación externa.
// Las ventas online siempre nacen pendientes.
func InitialState(channel, paymentType string) (status, paymentStatus string) {
	if channel == entity.ChannelStore && !strings.EqualFold(strings.TrimSpace(paymentType), entity.PaymentTypeQR) {
		return entity.SaleStatusCompleted, entity.PaymentStatusPaid
	}
	return entity.SaleStatusPending, entity.PaymentStatusPending
}
