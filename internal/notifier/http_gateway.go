package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-coverage/internal/config"

	"go.uber.org/zap"
)

type HTTPGateway struct {
	url    string
	token  string
	sender string
	client *http.Client
	logger *zap.Logger
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

type sendResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

func NewHTTPGateway(cfg config.Notifier, logger ...*zap.Logger) *HTTPGateway {
	l := zap.L().Named("notifier.http")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notifier.http")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &HTTPGateway{
		url:    cfg.URL,
		token:  cfg.Token,
		sender: cfg.Sender,
		client: &http.Client{Timeout: timeout},
		logger: l,
	}
}

func (g *HTTPGateway) Send(ctx context.Context, phone, message string) bool {
	to, err := NormalizePhone(phone)
	if err != nil {
		g.logger.Warn("notification skipped", zap.String("phone", phone), zap.Error(err))
		return false
	}

	messageID, err := g.post(ctx, sendRequest{To: to, From: g.sender, Message: message})
	if err != nil {
		g.logger.Error("notification failed", zap.String("to", to), zap.Error(err))
		return false
	}

	g.logger.Info("notification sent", zap.String("to", to), zap.String("message_id", messageID))
	return true
}

func (g *HTTPGateway) post(ctx context.Context, payload sendRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var out sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("parse response: %w", err)
		}
	}
	if out.Status != "" && out.Status != "sent" && out.Status != "queued" {
		return "", fmt.Errorf("gateway rejected message: %s %s", out.Status, out.Error)
	}
	return out.MessageID, nil
}
