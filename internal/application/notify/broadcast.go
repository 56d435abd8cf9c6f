package notify

import (
	"context"
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// BroadcastUseCase envío de una notificación a todos los usuarios con token (opcionalmente filtrados por rol).
type BroadcastUseCase struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	sender Sender
	log    *logger.Logger
}

// NewBroadcastUseCase construye el caso de uso.
func NewBroadcastUseCase(users repository.UserRepository, roles repository.RoleRepository, sender Sender, log *logger.Logger) *BroadcastUseCase {
	return &BroadcastUseCase{users: users, roles: roles, sender: sender, log: log.Component("broadcast")}
}

// Send verifica que el llamador pueda enviar notificaciones, junta los tokens y envía.
// Los fallos individuales se cuentan, no abortan el envío.
func (uc *BroadcastUseCase) Send(ctx context.Context, caller dto.Identity, in dto.GlobalNotificationRequest) (*dto.GlobalNotificationResponse, error) {
	if err := uc.authorize(ctx, caller); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if in.Title == "" || in.Body == "" {
		return nil, domain.Invalid("titulo y mensaje son requeridos")
	}

	users, err := uc.users.ListWithToken(ctx, in.Roles)
	if err != nil {
		return nil, err
	}
	raw := make([]string, 0, len(users))
	for _, u := range users {
		raw = append(raw, u.FCMToken)
	}
	tokens := SanitizeTokens(raw)

	out := &dto.GlobalNotificationResponse{Total: len(tokens), Roles: in.Roles}
	if out.Roles == nil {
		out.Roles = []string{}
	}
	if len(tokens) == 0 {
		return out, nil
	}

	n := Notification{Title: in.Title, Body: in.Body, Data: in.Data}
	if ms, ok := uc.sender.(MulticastSender); ok {
		sent, failed, err := ms.SendMulticast(ctx, tokens, n)
		if err != nil {
			uc.log.Error().Err(err).Int("tokens", len(tokens)).Msg("envío masivo fallido")
			out.Failed = len(tokens)
			return out, nil
		}
		out.Sent, out.Failed = sent, failed
		return out, nil
	}
	for _, t := range tokens {
		if _, err := uc.sender.Send(ctx, t, n); err != nil {
			uc.log.Warn().Err(err).Msg("token rechazado")
			out.Failed++
			continue
		}
		out.Sent++
	}
	uc.log.Info().Int("enviados", out.Sent).Int("fallidos", out.Failed).Msg("notificación global")
	return out, nil
}

func (uc *BroadcastUseCase) authorize(ctx context.Context, caller dto.Identity) error {
	if caller.UserID == "" {
		return domain.ErrUnauthorized
	}
	if caller.Role == entity.RoleAdmin {
		return nil
	}
	role, err := uc.roles.GetByName(ctx, caller.Role)
	if err != nil {
		return err
	}
	if !role.Has(entity.PermissionSendNotification) {
		return domain.ErrForbidden
	}
	return nil
}

// SanitizeTokens recorta espacios y elimina tokens vacíos o repetidos conservando el orden.
func SanitizeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
