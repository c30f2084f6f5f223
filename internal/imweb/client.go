// Package imweb fetches orders from the Imweb storefront API.
package imweb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/pkg/config"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
)

const (
	maxResponseBytes = 10 << 20
	tokenHeader      = "access-token"
	sourceName       = "imweb"
)

// Client authenticates with an API key pair and reads one page of orders.
type Client struct {
	baseURL    string
	key        string
	secret     string
	pageLimit  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// NewClient builds a client from config.
func NewClient(cfg config.ImwebConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, errors.New("imweb api key and secret are required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid imweb base url: %w", err)
	}
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = 100
	}
	rps := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		rps = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	c := &Client{
		baseURL:    base,
		key:        cfg.APIKey,
		secret:     cfg.APISecret,
		pageLimit:  limit,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rps, burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string {
	return sourceName
}

// Authenticate exchanges the key pair for an access token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(authRequest{Key: c.key, Secret: c.secret})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode auth request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build auth request")
	}
	req.Header.Set("Content-Type", "application/json")

	var out authResponse
	status, err := c.do(req, &out)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront auth request failed")
	}
	if status < 200 || status > 299 {
		return "", pkgerrors.New(pkgerrors.CodeUpstreamAuth, fmt.Sprintf("storefront authentication failed with status %d, check the API key", status))
	}
	if out.AccessToken == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstreamAuth, "storefront returned no access token")
	}
	return out.AccessToken, nil
}

// FetchOrders authenticates and returns the first page of orders paid within window.
func (c *Client) FetchOrders(ctx context.Context, window orders.Window) ([]orders.Order, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("payment_date_from", strconv.FormatInt(window.Start.Unix(), 10))
	query.Set("payment_date_to", strconv.FormatInt(window.End.Unix(), 10))
	query.Set("limit", strconv.Itoa(c.pageLimit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shop/orders?"+query.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build orders request")
	}
	req.Header.Set(tokenHeader, token)

	var out ordersResponse
	status, err := c.do(req, &out)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load storefront orders")
	}
	if status < 200 || status > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("failed to load storefront orders: status %d", status))
	}

	list, err := toOrders(out.Data.List)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront returned malformed orders").
			WithDetails(map[string]any{"errors": errorStrings(err)})
	}
	return list, nil
}

// do sends req through the limiter and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) (int, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return resp.StatusCode, nil
	}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(payload) > maxResponseBytes {
		return resp.StatusCode, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func errorStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
