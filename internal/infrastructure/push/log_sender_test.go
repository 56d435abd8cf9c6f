package push

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "abc", mask("abc"))
	assert.Equal(t, "…456789", mask("token-123456789"))
}

func TestLogSender_Send(t *testing.T) {
	s := NewLogSender(logger.Nop())
	detail, err := s.Send(context.Background(), "token-123456789", notify.Notification{Title: "Hola", Body: "Pago confirmado"})
	require.NoError(t, err)
	assert.Equal(t, "log", detail)
}
