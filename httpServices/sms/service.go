package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"salon-booking/logger"
)

// Sender dispatches a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Dispatch failures callers can branch on.
var (
	ErrGatewayTimeout  = errors.New("sms gateway timed out")
	ErrGatewayRejected = errors.New("sms gateway rejected the message")
)

// failureKeywords mark a failed send inside an HTTP 200 body. The gateway
// has no structured error schema, so success is inferred from a 2xx status
// plus the absence of these markers.
var failureKeywords = []string{
	"ERR",
	"FAILED",
	"FAILURE",
	"INVALID",
	"NOT SENT",
}

// GatewayClient talks to the legacy GET-based SMS gateway.
type GatewayClient struct {
	BaseURL  string
	Username string
	Password string
	SenderID string
	Client   *http.Client
}

// NewGatewayClient builds a client from environment configuration
func NewGatewayClient() *GatewayClient {
	return &GatewayClient{
		BaseURL:  os.Getenv("SMS_GATEWAY_URL"),
		Username: os.Getenv("SMS_GATEWAY_USERNAME"),
		Password: os.Getenv("SMS_GATEWAY_PASSWORD"),
		SenderID: os.Getenv("SMS_GATEWAY_SENDER_ID"),
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send dispatches a message through the gateway. The raw response body is
// logged for diagnosis with the password redacted.
func (g *GatewayClient) Send(ctx context.Context, phone, message string) error {
	if g.BaseURL == "" {
		return fmt.Errorf("SMS_GATEWAY_URL is not configured")
	}

	query := url.Values{}
	query.Set("username", g.Username)
	query.Set("password", g.Password)
	query.Set("to", phone)
	query.Set("from", g.SenderID)
	query.Set("text", message)

	requestURL := g.BaseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
		}
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	logger.Printf("SMS gateway response for %s [%d]: %s", redactURL(requestURL, g.Password), resp.StatusCode, strings.TrimSpace(string(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	upper := strings.ToUpper(string(body))
	for _, keyword := range failureKeywords {
		if strings.Contains(upper, keyword) {
			return fmt.Errorf("%w: gateway said %q", ErrGatewayRejected, strings.TrimSpace(string(body)))
		}
	}

	return nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// redactURL hides the gateway password in logged URLs
func redactURL(raw, password string) string {
	if password == "" {
		return raw
	}
	return strings.ReplaceAll(raw, url.QueryEscape(password), "REDACTED")
}

// NewSenderFromEnv picks the provider by SMS_PROVIDER (gateway or twilio).
func NewSenderFromEnv() (Sender, error) {
	switch os.Getenv("SMS_PROVIDER") {
	case "twilio":
		return NewTwilioSender()
	case "", "gateway":
		return NewGatewayClient(), nil
	default:
		return nil, fmt.Errorf("unknown SMS_PROVIDER: %s", os.Getenv("SMS_PROVIDER"))
	}
}
