package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glucomate-org/glucomate/errors"
	"github.com/glucomate-org/glucomate/session"
	"go.uber.org/zap"
)

const (
	AuthorizationHeaderKey = "Authorization"
	DefaultRequestTimeout  = 15 * time.Second
)

// Client is the low level binding to the GlucoMate API. Domain packages
// (auth, profile, chat) build their operations on top of it.
//
// Every authenticated request reads the bearer token from the session
// store. A 401 response from any endpoint clears the store before the
// error is returned, so a stale token is never reused.
type Client struct {
	host     string
	http     *http.Client
	sessions session.Store
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

type ClientBuilder struct {
	host     string
	http     *http.Client
	sessions session.Store
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{
		timeout: DefaultRequestTimeout,
	}
}

func (b *ClientBuilder) WithHost(host string) *ClientBuilder {
	b.host = strings.TrimSuffix(host, "/")
	return b
}

func (b *ClientBuilder) WithHttpClient(httpClient *http.Client) *ClientBuilder {
	b.http = httpClient
	return b
}

func (b *ClientBuilder) WithSessionStore(sessions session.Store) *ClientBuilder {
	b.sessions = sessions
	return b
}

func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	if timeout > 0 {
		b.timeout = timeout
	}
	return b
}

func (b *ClientBuilder) WithLogger(logger *zap.SugaredLogger) *ClientBuilder {
	b.logger = logger
	return b
}

func (b *ClientBuilder) Build() (*Client, error) {
	if b.host == "" {
		return nil, fmt.Errorf("api host is required")
	}
	if b.sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if b.http == nil {
		b.http = &http.Client{}
	}
	if b.logger == nil {
		b.logger = zap.NewNop().Sugar()
	}

	return &Client{
		host:     b.host,
		http:     b.http,
		sessions: b.sessions,
		timeout:  b.timeout,
		logger:   b.logger,
	}, nil
}

type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Body          interface{}
	Authenticated bool
}

// Do performs a single round trip and decodes the response envelope.
// Transport failures and timeouts map to errors.NetworkFailure; response
// codes map through errors.FromStatusCode. It never retries.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	target := c.host + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if req.Authenticated {
		token, err := c.sessions.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.Unauthorized.Err, err)
		}
		httpReq.Header.Set(AuthorizationHeaderKey, "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debugw("request failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, fmt.Errorf("%w: %v", errors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	envelope := DecodeEnvelope(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		// Any unauthorized response invalidates the whole session.
		if err := c.sessions.Clear(); err != nil {
			c.logger.Warnw("failed to clear session", "error", err)
		}
		return nil, errors.FromStatusCode(resp.StatusCode, envelope.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.FromStatusCode(resp.StatusCode, envelope.Message)
	}
	if envelope.Failed() {
		return nil, errors.FromStatusCode(http.StatusBadRequest, envelope.Message)
	}

	return envelope, nil
}
