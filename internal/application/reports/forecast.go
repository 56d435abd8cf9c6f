package reports

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/reporting"
)

const (
	forecastLookbackDays = 56
	forecastMaxItems     = 20
)

// Forecast estima las unidades por producto para una fecha a partir de las ventas
// del mismo día de la semana en las 8 semanas previas. Considera ventas en cualquier estado.
func (uc *UseCase) Forecast(ctx context.Context, in dto.ForecastRequest) (*dto.ForecastResponse, error) {
	target := uc.today().AddDate(0, 0, 1)
	if in.Date != "" {
		t, err := uc.parseDate("fecha", in.Date)
		if err != nil {
			return nil, err
		}
		target = t
	}
	from := target.AddDate(0, 0, -forecastLookbackDays)

	facts, err := uc.repo.SaleLinesBetween(ctx, from, target)
	if err != nil {
		return nil, fmt.Errorf("predicción: %w", err)
	}

	type acc struct {
		id, name string
		units    int
		sales    map[string]struct{}
	}
	occurrences := map[string]struct{}{}
	byProduct := map[string]*acc{}
	for _, f := range facts {
		if f.SoldAt.Weekday() != target.Weekday() {
			continue
		}
		occurrences[f.SaleID] = struct{}{}
		a, ok := byProduct[f.ProductID]
		if !ok {
			a = &acc{id: f.ProductID, name: f.ProductName, sales: map[string]struct{}{}}
			byProduct[f.ProductID] = a
		}
		a.units += f.Quantity
		a.sales[f.SaleID] = struct{}{}
	}

	items := make([]dto.ForecastItemDTO, 0, len(byProduct))
	for _, a := range byProduct {
		appeared := len(a.sales)
		avg := float64(a.units) / float64(appeared)
		items = append(items, dto.ForecastItemDTO{
			ProductID:      a.id,
			ProductName:    a.name,
			EstimatedUnits: reporting.EstimateUnits(avg),
			Average:        math.Round(avg*100) / 100,
			TimesSold:      appeared,
			Confidence:     reporting.Confidence(appeared, len(occurrences)),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].EstimatedUnits != items[j].EstimatedUnits {
			return items[i].EstimatedUnits > items[j].EstimatedUnits
		}
		return items[i].ProductName < items[j].ProductName
	})
	total := len(items)
	if len(items) > forecastMaxItems {
		items = items[:forecastMaxItems]
	}

	return &dto.ForecastResponse{
		Date:          target.Format(dateLayout),
		Weekday:       reporting.WeekdayName(target.Weekday()),
		Occurrences:   len(occurrences),
		TotalProducts: total,
		Items:         items,
	}, nil
}
