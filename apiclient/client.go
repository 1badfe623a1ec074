package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-talent-client/internal/config"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
	"github.com/jrsteele09/go-talent-client/token/jwt"
	"github.com/rs/zerolog/log"
)

const (
	DefaultExpiryMargin = 1 * time.Second
	DefaultRefreshPath  = "/token/refresh/"
	requestIDHeader     = "X-Request-ID"
)

// Client performs requests against a single API origin. Before each request it
// reads the credential pair from the session store, renews the access token
// when it is about to expire and attaches it as a bearer credential.
type Client struct {
	baseURL     *url.URL
	store       sessions.Store
	httpClient  *http.Client
	timeout     time.Duration
	margin      time.Duration
	refreshPath string
	userAgent   string

	listenersLock sync.RWMutex
	listeners     map[int]func()
	nextListener  int

	signOutLock  sync.Mutex
	signedOutFor string // refresh token of the last session signed out
}

func New(baseURL string, store sessions.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:     u,
		store:       store,
		httpClient:  &http.Client{},
		margin:      DefaultExpiryMargin,
		refreshPath: DefaultRefreshPath,
		listeners:   make(map[int]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// NewFromConfig builds a client from the environment configuration
func NewFromConfig(cfg config.ClientConfig, store sessions.Store, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.GetRequestTimeout()),
		WithExpiryMargin(cfg.GetExpiryMargin()),
		WithRefreshPath(cfg.GetRefreshPath()),
		WithUserAgent(cfg.GetUserAgent()),
	}
	return New(cfg.GetBaseURL(), store, append(base, opts...)...)
}

// Store returns the session store the client reads credentials from
func (c *Client) Store() sessions.Store {
	return c.store
}

// OnSessionExpired subscribes fn to the signal raised when the refresh token is
// rejected and the session has been cleared. The returned func unsubscribes.
func (c *Client) OnSessionExpired(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.listenersLock.Lock()
	defer c.listenersLock.Unlock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() {
		c.listenersLock.Lock()
		defer c.listenersLock.Unlock()
		delete(c.listeners, id)
	}
}

// Request authenticates (when a session exists) and sends one request.
// Non-2xx responses and transport errors come back as *RequestFailedError;
// a rejected refresh token comes back as *RefreshFailedError and the
// original request is never sent.
func (c *Client) Request(ctx context.Context, method, path string, body Body, opts ...RequestOption) (*Response, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	cfg := newRequestConfig(opts)

	var accessToken string
	if !cfg.anonymous {
		var err error
		if accessToken, err = c.EnsureValidCredential(ctx); err != nil {
			return nil, err
		}
	}
	return c.send(ctx, accessToken, method, path, body, cfg)
}

// EnsureValidCredential returns an access token that is usable right now.
// It returns "" when nobody is signed in.
func (c *Client) EnsureValidCredential(ctx context.Context) (string, error) {
	pair, err := c.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	if pair == nil {
		return "", nil
	}
	if !jwt.IsExpired(pair.Access, c.margin) {
		return pair.Access, nil
	}
	return c.refresh(ctx, *pair)
}

// Send sends one request with accessToken as the bearer credential, or with
// no Authorization header at all when accessToken is empty.
func (c *Client) Send(ctx context.Context, accessToken, method, path string, body Body, opts ...RequestOption) (*Response, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	return c.send(ctx, accessToken, method, path, body, newRequestConfig(opts))
}

func (c *Client) send(ctx context.Context, accessToken, method, path string, body Body, cfg requestConfig) (*Response, error) {
	resp, err := c.do(ctx, method, path, body, accessToken, cfg)
	if err != nil {
		return nil, &RequestFailedError{Method: method, Path: path, Err: err}
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, &RequestFailedError{Method: method, Path: path, Status: resp.Status, Header: resp.Header, Body: resp.Body}
	}
	return resp, nil
}

func (c *Client) refresh(ctx context.Context, current token.Pair) (string, error) {
	log.Debug().Msg("Access token expired, refreshing")

	resp, err := c.do(ctx, http.MethodPost, c.refreshPath, JSON(token.RefreshRequest{Refresh: current.Refresh}), "", requestConfig{header: http.Header{}})
	if err != nil {
		if ctx.Err() != nil {
			// The caller gave up; that says nothing about the refresh token
			return "", &RefreshFailedError{Err: err}
		}
		return c.refreshFailed(ctx, current, &RefreshFailedError{Err: err})
	}
	if resp.Status < 200 || resp.Status > 299 {
		return c.refreshFailed(ctx, current, &RefreshFailedError{Status: resp.Status, Body: resp.Body})
	}

	next, err := token.ParsePair(resp.Body)
	if err != nil {
		return c.refreshFailed(ctx, current, &RefreshFailedError{Status: resp.Status, Body: resp.Body, Err: err})
	}

	rotated := current.Rotate(next)
	if err := c.store.Set(ctx, rotated); err != nil {
		log.Err(err).Msg("Failed to persist refreshed session")
		return "", fmt.Errorf("persisting refreshed session: %w", err)
	}
	return rotated.Access, nil
}

// refreshFailed signs the session out unless another caller has already
// replaced the pair with a usable one while this refresh was in flight.
func (c *Client) refreshFailed(ctx context.Context, failed token.Pair, refreshErr *RefreshFailedError) (string, error) {
	if latest, err := c.store.Get(ctx); err == nil && latest != nil && latest.Refresh != failed.Refresh {
		if !jwt.IsExpired(latest.Access, c.margin) {
			return latest.Access, nil
		}
	}

	log.Warn().Int("status", refreshErr.Status).Msg("Refresh token is invalid, signing out")
	c.signOut(context.WithoutCancel(ctx), failed)
	return "", refreshErr
}

func (c *Client) signOut(ctx context.Context, failed token.Pair) {
	c.signOutLock.Lock()
	if c.signedOutFor == failed.Refresh {
		c.signOutLock.Unlock()
		return
	}
	c.signedOutFor = failed.Refresh
	c.signOutLock.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		log.Err(err).Msg("Failed to clear session")
	}

	c.listenersLock.RLock()
	listeners := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenersLock.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func (c *Client) do(ctx context.Context, method, path string, body Body, accessToken string, cfg requestConfig) (*Response, error) {
	target, err := c.resolve(path, cfg.query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		if reader, err = body.Reader(); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, values := range cfg.header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType())
	}
	if cfg.binary {
		req.Header.Set("Accept", "*/*")
	} else if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Del("Authorization")
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).Msg("Request failed")
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request complete")

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   data,
		Binary: cfg.binary,
	}, nil
}

// resolve joins a relative path onto the base URL. Absolute URLs are refused
// so a bearer token is never sent to another origin.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidPath, "%q", path)
	}
	if rel.IsAbs() || rel.Host != "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidPath, "%q is not relative to the api origin", path)
	}

	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(rel.EscapedPath(), "/")
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidPath, "%q", path)
	}

	u := *c.baseURL
	u.Path = decoded
	u.RawPath = escaped

	q := rel.Query()
	for k, values := range query {
		for _, v := range values {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func checkMethod(method string) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}
