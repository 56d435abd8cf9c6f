package notify

import "context"

// Notification contenido de una notificación push.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender puerto de envío de notificaciones push a un token de dispositivo.
// detail es el identificador del mensaje del proveedor (o una descripción) cuando el envío fue aceptado.
type Sender interface {
	Send(ctx context.Context, token string, n Notification) (detail string, err error)
}

// MulticastSender lo implementan los proveedores que aceptan varios tokens en una llamada.
type MulticastSender interface {
	SendMulticast(ctx context.Context, tokens []string, n Notification) (sent, failed int, err error)
}
