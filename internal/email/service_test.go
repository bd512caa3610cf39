package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/dravail-api/pkg/circuitbreaker"
)

func newTestService(send func(...*gomail.Message) error) *SMTPService {
	s := NewSMTPService(Config{Host: "localhost", Port: 2525, From: "noreply@dravail.in"})
	s.send = send
	return s
}

func TestSMTPService_SendCustom(t *testing.T) {
	var sent *gomail.Message
	s := newTestService(func(msgs ...*gomail.Message) error {
		sent = msgs[0]
		return nil
	})

	err := s.SendCustom(context.Background(), "owner@example.com", "Approve", "<h3>Congratulations!</h3>")
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"owner@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Approve"}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"noreply@dravail.in"}, sent.GetHeader("From"))

	var body bytes.Buffer
	_, err = sent.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Congratulations!")
}

func TestSMTPService_RequiresRecipient(t *testing.T) {
	s := newTestService(func(...*gomail.Message) error { return nil })
	assert.Error(t, s.SendCustom(context.Background(), " ", "Reject", "x"))
}

func TestSMTPService_OpensBreaker(t *testing.T) {
	calls := 0
	s := newTestService(func(...*gomail.Message) error {
		calls++
		return errors.New("connection refused")
	})

	for i := 0; i < 3; i++ {
		assert.Error(t, s.SendCustom(context.Background(), "a@b.c", "s", "b"))
	}
	err := s.SendCustom(context.Background(), "a@b.c", "s", "b")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 3, calls)
}

func TestSMTPService_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	s := newTestService(func(...*gomail.Message) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.SendCustom(ctx, "a@b.c", "s", "b")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLogService(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogService(zerolog.New(&buf))

	require.NoError(t, s.SendCustom(context.Background(), "a@b.c", "Approve", "body"))
	assert.Contains(t, buf.String(), "Approve")
}
