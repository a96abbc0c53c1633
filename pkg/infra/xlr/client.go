package xlr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/interfaces"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
	"github.com/m-mizutani/xlrbot/pkg/utils/httputil"
)

// ErrReleaseNotFound is returned when XL Release answers 404 for a release
var ErrReleaseNotFound = goerr.New("release not found")

// HTTPDo is satisfied by *http.Client
type HTTPDo interface {
	Do(req *http.Request) (*http.Response, error)
}

type client struct {
	baseURL  string
	username string
	password string
	http     HTTPDo
}

// Option configures the XL Release client
type Option func(*client)

// WithBasicAuth sets the credentials sent with every request
func WithBasicAuth(username, password string) Option {
	return func(c *client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h HTTPDo) Option {
	return func(c *client) {
		c.http = h
	}
}

// NewClient creates a release lookup client for the XL Release REST API
func NewClient(baseURL string, opts ...Option) (interfaces.ReleaseAPI, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid XL Release URL", goerr.V("url", baseURL))
	}

	c := &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httputil.NewClient(10 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetRelease fetches a release by its id, e.g. "Applications/Release42"
func (c *client) GetRelease(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error) {
	logger := ctxlog.From(ctx)

	if releaseID == "" {
		return nil, goerr.New("empty release id")
	}

	endpoint := c.baseURL + "/api/v1/releases/" + strings.TrimPrefix(releaseID.String(), "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release", goerr.V("release_id", releaseID))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, goerr.Wrap(ErrReleaseNotFound, "release lookup failed", goerr.V("release_id", releaseID))
	default:
		return nil, goerr.New("unexpected status code from XL Release",
			goerr.V("release_id", releaseID),
			goerr.V("status", resp.StatusCode),
		)
	}

	var release model.Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release", goerr.V("release_id", releaseID))
	}

	logger.Debug("Fetched release",
		"release_id", releaseID,
		"title", release.Title,
		"status", release.Status,
	)

	return &release, nil
}
