package messaging

import (
	"context"
	"time"
)

// ChannelPublisher wraps payloads in a Message envelope and publishes them on
// a fixed channel.
type ChannelPublisher struct {
	broker  Broker
	channel string
	now     func() time.Time
}

func NewChannelPublisher(broker Broker, channel string) *ChannelPublisher {
	return &ChannelPublisher{broker: broker, channel: channel, now: time.Now}
}

func (p *ChannelPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return p.broker.Publish(ctx, p.channel, Message{
		Type:      eventType,
		Payload:   payload,
		Timestamp: p.now().UTC(),
	})
}
