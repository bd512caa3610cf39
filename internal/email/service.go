package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/dravail-api/pkg/circuitbreaker"
)

// Service delivers HTML mail.
type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPService sends through an SMTP relay behind a circuit breaker.
type SMTPService struct {
	from string
	send func(msgs ...*gomail.Message) error
	cb   *circuitbreaker.CircuitBreaker
}

func NewSMTPService(cfg Config) *SMTPService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPService{
		from: cfg.From,
		send: dialer.DialAndSend,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: 3,
			Timeout:     time.Minute,
		}),
	}
}

func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient address is required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", content)

	return s.cb.Execute(func() error {
		done := make(chan error, 1)
		go func() { done <- s.send(m) }()

		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("failed to send email to %s: %w", to, err)
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("email to %s abandoned: %w", to, ctx.Err())
		}
	})
}

// LogService writes mail to the log instead of sending it. Used when SMTP is
// disabled.
type LogService struct {
	logger zerolog.Logger
}

func NewLogService(logger zerolog.Logger) *LogService {
	return &LogService{logger: logger.With().Str("component", "email").Logger()}
}

func (s *LogService) SendCustom(_ context.Context, to string, subject string, content string) error {
	s.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(content)).
		Msg("email delivery disabled, message logged")
	return nil
}
