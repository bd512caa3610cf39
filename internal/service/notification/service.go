package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/dravail-api/internal/email"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/messaging"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

// Channel and event type of the decision notifications published to the
// broker.
const (
	Channel           = "listing.decided"
	EventDelivered    = "notification.delivered"
	EventNotDelivered = "notification.failed"
)

// Notifier is the outbound notification port used by the approval workflow.
type Notifier interface {
	Send(ctx context.Context, n model.Notification) error
}

type Service struct {
	messages  repository.MessageRepository
	emailSvc  email.Service
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(messages repository.MessageRepository, emailSvc email.Service, publisher messaging.Publisher, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		messages:  messages,
		emailSvc:  emailSvc,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "notification").Logger(),
		now:       time.Now,
	}
}

// Send records the notification as an AdminToUser message, mails it and
// announces the outcome on the broker. Only a failed mail delivery is
// reported as NotificationFailed; record and publish problems are logged.
func (s *Service) Send(ctx context.Context, n model.Notification) error {
	if strings.TrimSpace(n.Recipient) == "" {
		s.metrics.NotificationFailures.WithLabelValues("recipient").Inc()
		return errors.NotificationFailed(fmt.Errorf("listing has no contact address"))
	}
	if n.Kind == "" {
		n.Kind = model.MessageAdminToUser
	}

	start := s.now()
	defer func() {
		s.metrics.NotificationLatency.Observe(s.now().Sub(start).Seconds())
	}()

	msg := &model.Message{
		ID:         uuid.New(),
		SenderName: n.ActorName,
		Recipient:  n.Recipient,
		Subject:    n.Subject,
		Body:       n.BodyHTML,
		Kind:       n.Kind,
		DateSent:   start.UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.metrics.NotificationFailures.WithLabelValues("record").Inc()
		s.logger.Error().Err(err).Str("recipient", n.Recipient).Msg("failed to record notification message")
	}

	sendErr := s.emailSvc.SendCustom(ctx, n.Recipient, n.Subject, n.BodyHTML)
	if sendErr != nil {
		s.metrics.NotificationFailures.WithLabelValues("email").Inc()
	}

	event := model.NotificationEvent{
		ID:        uuid.New(),
		MessageID: msg.ID,
		Type:      EventDelivered,
		Recipient: n.Recipient,
		Subject:   n.Subject,
		Delivered: sendErr == nil,
		CreatedAt: s.now().UTC(),
	}
	if sendErr != nil {
		event.Type = EventNotDelivered
	}
	if err := s.publisher.Publish(ctx, event.Type, event); err != nil {
		s.metrics.BrokerPublishes.WithLabelValues(Channel, "error").Inc()
		s.logger.Warn().Err(err).Str("event", event.Type).Msg("failed to publish notification event")
	} else {
		s.metrics.BrokerPublishes.WithLabelValues(Channel, "ok").Inc()
	}

	if sendErr != nil {
		return errors.NotificationFailed(sendErr)
	}
	return nil
}
