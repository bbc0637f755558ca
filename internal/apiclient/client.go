// Package apiclient talks to the recruitment REST backend on behalf of a browser session.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"recruitadmin/internal/busy"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/utils"
)

// TokenSource supplies the bearer token of the calling session and clears it once it expired.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Expire(ctx context.Context) error
}

type tokenKey struct{}

// WithTokenSource attaches the session's token source to ctx.
func WithTokenSource(ctx context.Context, ts TokenSource) context.Context {
	return context.WithValue(ctx, tokenKey{}, ts)
}

func tokenSource(ctx context.Context) TokenSource {
	ts, _ := ctx.Value(tokenKey{}).(TokenSource)
	return ts
}

type Config struct {
	BaseURL string
	AuthURL string
	Timeout time.Duration
}

// Metrics counts outgoing requests by method and status.
type Metrics struct {
	Requests *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitadmin",
		Name:      "backend_requests_total",
		Help:      "Backend requests by method and status code.",
	}, []string{"method", "status"})}
	if reg != nil {
		reg.MustRegister(m.Requests)
	}
	return m
}

type Client struct {
	api     *resty.Client
	auth    *resty.Client
	busy    *busy.Counter
	metrics *Metrics
	now     func() time.Time
}

func New(cfg Config, counter *busy.Counter, metrics *Metrics) *Client {
	if counter == nil {
		counter = busy.New(nil)
	}
	c := &Client{busy: counter, metrics: metrics, now: time.Now}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = cfg.BaseURL
	}
	c.api = c.newResty(cfg.BaseURL, cfg.Timeout)
	c.auth = c.newResty(authURL, cfg.Timeout)
	return c
}

func (c *Client) newResty(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	r.OnBeforeRequest(c.authorize)
	r.OnAfterResponse(c.observe)
	return r
}

// authorize attaches the bearer token and aborts when it already expired.
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	ts := tokenSource(ctx)
	if ts == nil {
		return nil
	}
	tok, err := ts.Token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if tok == "" {
		return nil
	}
	if utils.TokenExpired(tok, c.now()) {
		if err := ts.Expire(ctx); err != nil {
			utils.LogError("", "api", "expire_token", err)
		}
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, domain.ErrTokenExpired)
	}
	req.SetAuthToken(tok)
	return nil
}

func (c *Client) observe(_ *resty.Client, resp *resty.Response) error {
	if c.metrics != nil {
		c.metrics.Requests.WithLabelValues(resp.Request.Method, strconv.Itoa(resp.StatusCode())).Inc()
	}
	return nil
}

// Busy exposes the shared in-flight counter.
func (c *Client) Busy() *busy.Counter { return c.busy }

// do runs one request with busy accounting and maps non-2xx answers to errors.
func (c *Client) do(ctx context.Context, rc *resty.Client, method, path string, build func(*resty.Request)) (*resty.Response, error) {
	done := c.busy.Track()
	defer done()

	req := rc.R().SetContext(ctx)
	if build != nil {
		build(req)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return resp, newStatusError(method, path, resp)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, rc *resty.Client, method, path string, body, out any, build func(*resty.Request)) error {
	resp, err := c.do(ctx, rc, method, path, func(r *resty.Request) {
		if body != nil {
			r.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		if build != nil {
			build(r)
		}
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw := resp.Body()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// StatusError is a non-2xx backend answer.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	cause   error
}

// Error is shown to users as is, so it prefers the backend's own message.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

func (e *StatusError) Unwrap() error { return e.cause }

func newStatusError(method, path string, resp *resty.Response) *StatusError {
	e := &StatusError{Method: method, Path: path, Status: resp.StatusCode(), Message: backendMessage(resp.Body())}
	switch e.Status {
	case http.StatusUnauthorized:
		e.cause = domain.ErrUnauthorized
	case http.StatusNotFound:
		e.cause = domain.NotFoundError{Resource: path}
	case http.StatusConflict:
		e.cause = domain.ConflictError{Msg: e.Message}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.cause = domain.ValidationError{Msg: e.Message}
	default:
		e.cause = domain.InternalError{Msg: e.Message}
	}
	return e
}

func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, s := range []string{payload.Message, payload.Error, payload.Title} {
			if s != "" {
				return s
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// Message is the user facing text of err: the backend message when there is one.
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
