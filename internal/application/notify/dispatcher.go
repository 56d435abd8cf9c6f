package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/boutique-api/pkg/logger"
)

const defaultSendTimeout = 10 * time.Second

// Dispatcher envía notificaciones fuera del request (best-effort): los errores solo se registran en el log.
// Wait permite al apagado esperar los envíos en curso.
type Dispatcher struct {
	sender  Sender
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher construye el dispatcher sobre un Sender ya inicializado.
func NewDispatcher(sender Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log.Component("notify"), timeout: defaultSendTimeout}
}

// Dispatch lanza el envío en una goroutine y retorna de inmediato.
func (d *Dispatcher) Dispatch(token string, n Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.send(ctx, token, n)
	}()
}

func (d *Dispatcher) send(ctx context.Context, token string, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Msg("panic enviando notificación")
		}
	}()
	detail, err := d.sender.Send(ctx, token, n)
	if err != nil {
		d.log.Warn().Err(err).Str("titulo", n.Title).Msg("no se pudo enviar la notificación")
		return
	}
	d.log.Info().Str("detalle", detail).Str("titulo", n.Title).Msg("notificación enviada")
}

// Wait espera a que terminen los envíos en curso o a que expire ctx.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
