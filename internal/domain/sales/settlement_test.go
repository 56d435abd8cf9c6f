package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/sales"
)

func TestInitialState(t *testing.T) {
	cases := []struct {
		name          string
		channel       string
		paymentType   string
		status        string
		paymentStatus string
	}{
		{"tienda efectivo", entity.ChannelStore, entity.PaymentTypeCash, entity.SaleStatusCompleted, entity.PaymentStatusPaid},
		{"tienda qr", entity.ChannelStore, entity.PaymentTypeQR, entity.SaleStatusPending, entity.PaymentStatusPending},
		{"tienda QR en mayúsculas", entity.ChannelStore, "QR", entity.SaleStatusPending, entity.PaymentStatusPending},
		{"tienda Qr con espacios", entity.ChannelStore, " Qr ", entity.SaleStatusPending, entity.PaymentStatusPending},
		{"online efectivo", entity.ChannelOnline, entity.PaymentTypeCash, entity.SaleStatusPending, entity.PaymentStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ps := sales.InitialState(tc.channel, tc.paymentType)
			assert.Equal(t, tc.status, st)
			assert.Equal(t, tc.paymentStatus, ps)
		})
	}
}
