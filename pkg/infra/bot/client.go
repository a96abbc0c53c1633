package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/utils/httputil"
	"golang.org/x/time/rate"
)

// DeliveryHeader carries a unique id per POST for correlating bot logs
const DeliveryHeader = "X-Xlr-Bot-Delivery"

// HTTPDo is satisfied by *http.Client
type HTTPDo interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts activity notifications to the bot endpoint
type Client struct {
	endpoint string
	http     HTTPDo
	limiter  *rate.Limiter
}

// Option configures Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h HTTPDo) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit caps outbound requests per second. A non-positive rps
// disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a bot client. botURL is the base URL; notifications go
// to <botURL>/activity.
func NewClient(botURL string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(botURL, "/") + "/activity",
		http:     httputil.NewClient(10 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL notifications are posted to
func (c *Client) Endpoint() string { return c.endpoint }

// Notify posts the envelope. Only HTTP 200 counts as delivered.
func (c *Client) Notify(ctx context.Context, n *model.Notification) error {
	logger := ctxlog.From(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return goerr.Wrap(err, "rate limiter wait aborted", goerr.V("id", n.ID))
		}
	}

	body, err := encode(n)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal notification", goerr.V("id", n.ID))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create bot request", goerr.V("url", c.endpoint))
	}
	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DeliveryHeader, deliveryID)

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to post notification to bot",
			goerr.V("url", c.endpoint),
			goerr.V("id", n.ID),
		)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("bot rejected notification",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", c.endpoint),
			goerr.V("id", n.ID),
		)
	}

	logger.Debug("Posted notification to bot",
		"id", n.ID,
		"type", n.Type,
		"task_id", n.TaskID,
		"delivery_id", deliveryID,
	)
	return nil
}

// encode marshals without HTML escaping so messages reach the bot verbatim
func encode(n *model.Notification) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
