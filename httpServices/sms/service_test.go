package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		BaseURL:  baseURL,
		Username: "salon",
		Password: "s3cret",
		SenderID: "SALON",
		Client:   &http.Client{Timeout: 2 * time.Second},
	}
}

func TestGatewaySendSuccess(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("SMS SUBMITTED: ID 12345"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Send(context.Background(), "+8801712345678", "Your code is 123456")
	require.NoError(t, err)

	assert.Equal(t, "salon", got.Get("username"))
	assert.Equal(t, "s3cret", got.Get("password"))
	assert.Equal(t, "+8801712345678", got.Get("to"))
	assert.Equal(t, "SALON", got.Get("from"))
	assert.Equal(t, "Your code is 123456", got.Get("text"))
}

func TestGatewaySendFailureKeywordInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ERR: invalid destination"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Send(context.Background(), "+8801712345678", "hello")
	assert.ErrorIs(t, err, ErrGatewayRejected)
}

func TestGatewaySendNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Send(context.Background(), "+8801712345678", "hello")
	assert.ErrorIs(t, err, ErrGatewayRejected)
}

func TestGatewaySendMissingBaseURL(t *testing.T) {
	client := newTestClient("")
	err := client.Send(context.Background(), "+8801712345678", "hello")
	assert.Error(t, err)
}

func TestGatewaySendTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Client.Timeout = 50 * time.Millisecond

	err := client.Send(context.Background(), "+8801712345678", "hello")
	assert.ErrorIs(t, err, ErrGatewayTimeout)
}

func TestRedactURLHidesPassword(t *testing.T) {
	raw := "http://gateway.example/send?password=s3cret&to=123"
	redacted := redactURL(raw, "s3cret")
	assert.NotContains(t, redacted, "s3cret")
	assert.Contains(t, redacted, "REDACTED")

	// Empty password leaves the URL untouched
	assert.Equal(t, raw, redactURL(raw, ""))
}
