package dto

// GlobalNotificationRequest body para POST /api/notificaciones/global.
type GlobalNotificationRequest struct {
	Title string            `json:"titulo"`
	Body  string            `json:"mensaje"`
	Roles []string          `json:"roles,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// GlobalNotificationResponse resultado del envío masivo.
type GlobalNotificationResponse struct {
	Sent   int      `json:"enviados"`
	Failed int      `json:"fallidos"`
	Total  int      `json:"total"`
	Roles  []string `json:"roles"`
}
