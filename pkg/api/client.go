package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hirewatch/hirewatch/pkg/whttp"
)

const (
	// DefaultBaseURL points at a local development backend.
	DefaultBaseURL = "http://localhost:8000/api"

	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 60 * time.Second
)

// Config tunes a gateway client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	Proxy         string
}

// Client is the thin gateway to the backend REST API. It performs one
// request per call: no retries, no caching, no token handling. Callers own
// retry policy.
type Client struct {
	BaseURL string

	httpClient   *http.Client
	uploadClient *http.Client
}

// New builds a Client from config, applying defaults and the optional proxy.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}

	transport := http.DefaultTransport
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &Client{
		BaseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout, Transport: transport},
	}, nil
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	upload      bool
	wantStatus  int // 0 accepts any 2xx
}

// roundTrip sends one request and classifies the outcome. Callers get
// either a 2xx (or wantStatus) response or an *Error.
func (c *Client) roundTrip(ctx context.Context, req request) (*whttp.WHTTPRes, error) {
	client := c.httpClient
	if req.upload {
		client = c.uploadClient
	}

	res, err := send(ctx, client, c.BaseURL+req.path, req)
	if err != nil {
		return nil, classifyTransport(req.op, err)
	}

	ok := res.StatusCode >= 200 && res.StatusCode < 300
	if req.wantStatus != 0 {
		ok = res.StatusCode == req.wantStatus
	}
	if !ok {
		return nil, classifyResponse(req.op, res)
	}
	return res, nil
}

// do sends one request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	res, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || res.BodyString == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(res.BodyString), out); err != nil {
		return &Error{Kind: KindUnknown, Status: res.StatusCode, Op: req.op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// doRaw sends one request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, req request) (string, error) {
	res, err := c.roundTrip(ctx, req)
	if err != nil {
		return "", err
	}
	return res.BodyString, nil
}

func send(ctx context.Context, client *http.Client, target string, req request) (*whttp.WHTTPRes, error) {
	return whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		URL:         target,
		Method:      req.method,
		Query:       req.query,
		Body:        req.body,
		ContentType: req.contentType,
	}, client)
}

// Health probes the backend. A nil error means the API answered.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{op: "health", method: http.MethodGet, path: "/health"}, nil)
}
