package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain"
)

func TestInsufficientStockError_MensajeYSentinel(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &domain.InsufficientStockError{
		Product: "Blusa", Branch: "Centro", Available: 1, Requested: 3,
	})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Stock insuficiente para Blusa en Centro. Disponible: 1, Solicitado: 3")

	var detail *domain.InsufficientStockError
	assert.True(t, errors.As(err, &detail))
	assert.Equal(t, 3, detail.Requested)
}

func TestInvalidNotFound_EnvuelvenSentinels(t *testing.T) {
	assert.ErrorIs(t, domain.Invalid("items requerido"), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.NotFound("sucursal %s", "x"), domain.ErrNotFound)
	assert.EqualError(t, domain.NotFound("sucursal %s", "x"), "recurso no encontrado: sucursal x")
}
