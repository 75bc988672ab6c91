// Package notifier delivers plain text messages to an employee's phone.
package notifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go-coverage/internal/config"

	"go.uber.org/zap"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock
type Gateway interface {
	// Send reports whether the message was accepted by the transport. It
	// never returns an error; failures are logged by the implementation.
	Send(ctx context.Context, phone, message string) bool
}

var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NormalizePhone strips separators and returns the number in E.164 form.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if strings.HasPrefix(cleaned, "00") {
		cleaned = "+" + cleaned[2:]
	}
	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+" + cleaned
	}
	if !phonePattern.MatchString(cleaned) {
		return "", fmt.Errorf("invalid phone number %q", phone)
	}
	return cleaned, nil
}

// New returns the HTTP gateway when a URL is configured and the log gateway
// otherwise.
func New(cfg config.Notifier, logger ...*zap.Logger) Gateway {
	if cfg.URL == "" {
		return NewLogGateway(logger...)
	}
	return NewHTTPGateway(cfg, logger...)
}
