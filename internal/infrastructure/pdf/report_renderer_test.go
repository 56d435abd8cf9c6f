package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/reports"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0,00",
		"25000":     "$25.000,00",
		"1234567.5": "$1.234.567,50",
		"-1500.256": "-$1.500,26",
		"999.999":   "$1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestReportRenderer_Render(t *testing.T) {
	r := &reports.Report{
		GeneratedAt: time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
		Summary: dto.SummaryResponse{
			Overall:  dto.TotalsDTO{Total: decimal.NewFromInt(300), Count: 3, AverageTicket: 100},
			LowStock: []dto.LowStockDTO{{ProductName: "Blusa", Units: 1}},
		},
		TopProducts: []dto.TopProductDTO{{Rank: 1, ProductName: "Blusa", Units: 3, Amount: decimal.NewFromInt(300)}},
	}
	g := NewReportRenderer("Boutique Centro")
	content, err := g.Render(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Equal(t, "pdf", g.Extension())
	assert.Equal(t, "application/pdf", g.ContentType())
}
