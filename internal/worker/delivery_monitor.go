// Package worker holds background consumers of broker events.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/service/notification"
	"github.com/jwalitptl/dravail-api/pkg/messaging"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

type DeliveryMonitorConfig struct {
	// FailureStreak is the number of consecutive failed deliveries after which
	// the monitor reports degraded mail delivery.
	FailureStreak int
}

// DeliveryMonitor consumes the notification outcome events published after
// each decision and tracks mail delivery health.
type DeliveryMonitor struct {
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  zerolog.Logger
	config  DeliveryMonitorConfig

	failures int
}

func NewDeliveryMonitor(broker messaging.Broker, m *metrics.Metrics, logger zerolog.Logger, config DeliveryMonitorConfig) *DeliveryMonitor {
	if config.FailureStreak <= 0 {
		config.FailureStreak = 5
	}
	return &DeliveryMonitor{
		broker:  broker,
		metrics: m,
		logger:  logger.With().Str("worker", "delivery_monitor").Logger(),
		config:  config,
	}
}

type envelope struct {
	Type    string                  `json:"type"`
	Payload model.NotificationEvent `json:"payload"`
}

// Start subscribes and blocks until ctx is done or the subscription closes.
func (w *DeliveryMonitor) Start(ctx context.Context) error {
	events, err := w.broker.Subscribe(ctx, notification.Channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", notification.Channel, err)
	}

	w.logger.Info().Str("channel", notification.Channel).Msg("Worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Worker shutting down")
			return nil
		case raw, ok := <-events:
			if !ok {
				return nil
			}
			w.handle(raw)
		}
	}
}

func (w *DeliveryMonitor) handle(raw []byte) {
	var msg envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		w.metrics.NotificationEvents.WithLabelValues("malformed").Inc()
		w.logger.Warn().Err(err).Msg("Dropping malformed notification event")
		return
	}
	w.metrics.NotificationEvents.WithLabelValues(msg.Type).Inc()

	switch msg.Type {
	case notification.EventDelivered:
		if w.failures >= w.config.FailureStreak {
			w.logger.Info().Int("after_failures", w.failures).Msg("Notification delivery recovered")
		}
		w.failures = 0
	case notification.EventNotDelivered:
		w.failures++
		w.logger.Warn().
			Str("message_id", msg.Payload.MessageID.String()).
			Str("recipient", msg.Payload.Recipient).
			Str("subject", msg.Payload.Subject).
			Msg("Notification not delivered")
		if w.failures == w.config.FailureStreak {
			w.logger.Error().Int("failures", w.failures).Msg("Notification delivery degraded")
		}
	}
}

// Failures returns the current run of consecutive failed deliveries.
func (w *DeliveryMonitor) Failures() int {
	return w.failures
}
