package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind tells which direction a message travels.
type MessageKind string

const (
	MessageUserToAdmin MessageKind = "UserToAdmin"
	MessageAdminToUser MessageKind = "AdminToUser"
)

// Message is a contact message. Visitors create UserToAdmin messages;
// AdminToUser messages record notifications sent by administrators.
// AdminResponse and DateResponded are filled once.
type Message struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	Reference         string      `json:"reference" db:"reference"`
	SenderName        string      `json:"sender_name" db:"sender_name"`
	SenderEmail       string      `json:"sender_email" db:"sender_email"`
	Recipient         string      `json:"recipient,omitempty" db:"recipient"`
	Subject           string      `json:"subject" db:"subject"`
	Body              string      `json:"body" db:"body"`
	Kind              MessageKind `json:"kind" db:"kind"`
	SenderFingerprint string      `json:"-" db:"sender_fingerprint"`
	DateSent          time.Time   `json:"date_sent" db:"date_sent"`
	AdminResponse     *string     `json:"admin_response,omitempty" db:"admin_response"`
	DateResponded     *time.Time  `json:"date_responded,omitempty" db:"date_responded"`
}

// Responded reports whether an administrator already answered.
func (m *Message) Responded() bool {
	return m.AdminResponse != nil
}
