package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one outbound message from an administrator to a listing
// owner.
type Notification struct {
	Recipient string      `json:"recipient"`
	Subject   string      `json:"subject"`
	BodyHTML  string      `json:"body_html"`
	ActorName string      `json:"actor_name"`
	Kind      MessageKind `json:"kind"`
}

// NotificationEvent is published to the broker after a delivery attempt.
type NotificationEvent struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	Type      string    `json:"type"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}
