package push

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

var _ notify.Sender = (*LogSender)(nil)

// LogSender registra las notificaciones en el log en lugar de enviarlas (PUSH_ENABLED=false).
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de desarrollo.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.Component("push")}
}

func (s *LogSender) Send(_ context.Context, token string, n notify.Notification) (string, error) {
	s.log.Info().
		Str("token", mask(token)).
		Str("titulo", n.Title).
		Str("mensaje", n.Body).
		Interface("data", n.Data).
		Msg("notificación push (no enviada)")
	return "log", nil
}

// mask deja visibles solo los últimos 6 caracteres del token.
func mask(token string) string {
	if len(token) <= 6 {
		return token
	}
	return "…" + token[len(token)-6:]
}
