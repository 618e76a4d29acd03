package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/svenska/internal/apierr"
)

// DefaultURL is the public svenska backend
const DefaultURL = "https://svenska-new-tab-backend.fly.dev"

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration

	// BreakerFailures consecutive failures open the breaker for
	// BreakerCooldown
	BreakerFailures uint32
	BreakerCooldown time.Duration

	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultURL,
		Timeout:         30 * time.Second,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// Client talks to the backend proxy
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// New creates a proxy client
func New(config Config) *Client {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = defaults.BreakerFailures
	}
	if config.BreakerCooldown <= 0 {
		config.BreakerCooldown = defaults.BreakerCooldown
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	failures := config.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "proxy",
		Timeout: config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A 4xx is the caller's problem, not a sign that the proxy is down
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			status := apierr.Status(err)
			return status >= 400 && status < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("proxy circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    httpClient,
		breaker: breaker,
	}
}

// BaseURL returns the proxy URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a successful answer
type response struct {
	header http.Header
	body   []byte
}

// errorBody is the error payload of the proxy
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends one request. in is JSON encoded when not nil.
func (c *Client) do(ctx context.Context, op, method, path string, in any) (*response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &apierr.NetworkError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &apierr.NetworkError{Op: op, Err: err}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			var eb errorBody
			msg := ""
			if json.Unmarshal(data, &eb) == nil {
				msg = firstNonEmpty(eb.Error, eb.Message)
			}
			return nil, &apierr.ProviderError{Op: op, Status: resp.StatusCode, Message: msg}
		}

		return &response{header: resp.Header, body: data}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &apierr.NetworkError{Op: op, Err: err}
		}
		return nil, err
	}

	log.Debug("proxy request", "op", op, "method", method, "path", path)
	return result.(*response), nil
}

// doJSON sends a request and decodes the JSON answer into out
func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	resp, err := c.do(ctx, op, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &apierr.MalformedResponseError{Reason: op, Err: err}
	}
	return nil
}

// Health pings the proxy. Hosted proxies sleep when idle, so this is also
// how the proxy gets woken up at startup.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, "health", http.MethodGet, "/health", nil, &status); err != nil {
		return err
	}
	if status.Status != "" && status.Status != "ok" {
		return fmt.Errorf("proxy reports status %q", status.Status)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
