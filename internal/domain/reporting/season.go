// Package reporting reglas puras de los reportes: temporadas, nombres de día y heurística de predicción.
package reporting

import (
	"time"

	"github.com/jhoicas/boutique-api/pkg/textfold"
)

// Temporadas del hemisferio sur.
var seasons = map[string][]int{
	"otono":     {3, 4, 5},
	"invierno":  {6, 7, 8},
	"primavera": {9, 10, 11},
	"verano":    {12, 1, 2},
}

// SeasonMonths devuelve los meses de la temporada (acepta "otoño" y "otono").
func SeasonMonths(name string) ([]int, bool) {
	months, ok := seasons[textfold.Fold(name)]
	return months, ok
}

var weekdayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// WeekdayName nombre en español del día de la semana.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}
