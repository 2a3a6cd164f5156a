package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Minute

	// Maximum bytes of an error body kept on StatusError
	maxErrorBody = 512
)

var (
	// ErrTimeout is returned when the workflow does not answer within the client timeout
	ErrTimeout = errors.New("n8n webhook timed out")
	// ErrUnreachable is returned when the request never got an HTTP response
	ErrUnreachable = errors.New("n8n webhook unreachable")
	// ErrInvalidBody is returned when a 2xx reply is not JSON
	ErrInvalidBody = errors.New("n8n webhook returned invalid JSON")
	// ErrNoURL is returned when the client was built without a webhook URL
	ErrNoURL = errors.New("n8n webhook URL is empty")
)

// Client calls an n8n webhook that runs the Instagram scraping workflow
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithURL sets the webhook URL
func WithURL(u string) ClientOption {
	return func(c *Client) {
		c.url = u
	}
}

// WithTimeout bounds a single lookup
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new n8n webhook client
func New(opts ...ClientOption) *Client {
	c := &Client{
		timeout: defaultTimeout,
		// The lookup context carries the deadline
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Configured reports whether a webhook URL is set
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.url) != ""
}

// StatusError represents a non-2xx reply from the webhook
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("n8n webhook error: status %d: %s", e.StatusCode, e.Status)
}

// LookupInput represents input for a profile lookup
type LookupInput struct {
	Username  string
	RequestID string
	Timestamp time.Time
}

type lookupRequest struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// Lookup posts the username to the webhook and returns the decoded reply.
// Numbers are kept as json.Number. An empty reply body yields nil.
// The call is made once; failures are not retried.
func (c *Client) Lookup(ctx context.Context, in LookupInput) (any, error) {
	if !c.Configured() {
		return nil, ErrNoURL
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	payload, err := json.Marshal(lookupRequest{
		Username:  in.Username,
		Timestamp: ts.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		RequestID: in.RequestID,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if isNgrokFree(c.url) {
		// Skips the ngrok free tier interstitial page
		req.Header.Set("ngrok-skip-browser-warning", "true")
	}

	var out any
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, req *http.Request, out *any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(ctx, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		*out = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return nil
}

// classify attaches ErrTimeout or ErrUnreachable to a transport failure.
// A caller cancellation is passed through untouched.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
}

func isNgrokFree(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Hostname(), "ngrok-free.app")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
