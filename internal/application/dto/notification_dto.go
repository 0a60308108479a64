package dto

import "time"

// NotificationResponse entrada de la bandeja del usuario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse bandeja completa.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

// QualityCheckRequest imagen a inspeccionar; SKU es opcional y solo se usa en el mensaje.
type QualityCheckRequest struct {
	SKU      string
	Filename string
	Image    []byte
}

// QualityCheckResponse veredicto y cantidad de usuarios alertados.
type QualityCheckResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Notified int    `json:"notified"`
}

// AssistantRequest pregunta en lenguaje natural.
type AssistantRequest struct {
	Question string `json:"question"`
}

// AssistantResponse respuesta del asistente; Products o Notifications según la intención.
type AssistantResponse struct {
	Intent        string                 `json:"intent"`
	Message       string                 `json:"message"`
	Products      []ProductResponse      `json:"products,omitempty"`
	Notifications []NotificationResponse `json:"notifications,omitempty"`
}
