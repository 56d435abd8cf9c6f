// Package push envía notificaciones push por Firebase Cloud Messaging.
package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/pkg/config"
)

var (
	_ notify.Sender          = (*FirebaseSender)(nil)
	_ notify.MulticastSender = (*FirebaseSender)(nil)
)

// maxMulticastTokens límite de tokens por llamada a FCM.
const maxMulticastTokens = 500

// FirebaseSender implementa notify.Sender y notify.MulticastSender sobre FCM.
type FirebaseSender struct {
	client *messaging.Client
}

// NewFirebaseSender inicializa la app de Firebase con el archivo de credenciales de la cuenta de servicio.
func NewFirebaseSender(ctx context.Context, cfg config.PushConfig) (*FirebaseSender, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return &FirebaseSender{client: client}, nil
}

// Send envía la notificación a un token. Retorna el id del mensaje asignado por FCM.
func (s *FirebaseSender) Send(ctx context.Context, token string, n notify.Notification) (string, error) {
	id, err := s.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	})
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	return id, nil
}

// SendMulticast envía a varios tokens en lotes de hasta 500.
func (s *FirebaseSender) SendMulticast(ctx context.Context, tokens []string, n notify.Notification) (sent, failed int, err error) {
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       tokens[start:end],
			Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
			Data:         n.Data,
		})
		if err != nil {
			return sent, failed + (len(tokens) - start), fmt.Errorf("fcm multicast: %w", err)
		}
		sent += resp.SuccessCount
		failed += resp.FailureCount
	}
	return sent, failed, nil
}
