package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Ferrari4891/selecttravel-api/internal/config"
	"github.com/Ferrari4891/selecttravel-api/pkg/circuitbreaker"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	cb     *circuitbreaker.CircuitBreaker
}

// NewSMTPService returns a gomail-backed sender. Delivery goes through a
// circuit breaker so a dead SMTP provider fails fast for the rest of the cycle
// instead of stalling every schedule on connection timeouts.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: 5,
			Timeout:     time.Minute,
		}),
	}
}

func (s *smtpService) Send(_ context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	err := s.cb.Execute(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		return fmt.Errorf("failed to deliver email: %w", err)
	}
	return nil
}
