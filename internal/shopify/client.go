// internal/shopify/client.go
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"storebridge/pkg/config"
)

var (
	// ErrNotFound means the upstream answered 404 for a single-resource lookup.
	ErrNotFound = errors.New("shopify: resource not found")
	// ErrTimeout means the bounded upstream call exceeded its deadline.
	ErrTimeout = errors.New("shopify: upstream call timed out")
)

// maxPageLimit is the Admin API page-size ceiling.
const maxPageLimit = 250

// Client is a read-only Shopify Admin API client. It is built once at
// startup from immutable config and is safe for concurrent use. Every call
// is bounded by the configured upstream timeout, retried with exponential
// backoff on transient failures, and guarded by a circuit breaker.
type Client struct {
	baseURL     string
	accessToken string
	apiKey      string
	password    string

	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	timeout time.Duration
	log     *zap.SugaredLogger

	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

func New(cfg config.Config, log *zap.SugaredLogger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "shopify",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	})
	return &Client{
		baseURL:      apiBaseURL(cfg.ShopURL, cfg.APIVersion),
		accessToken:  cfg.AccessToken,
		apiKey:       cfg.APIKey,
		password:     cfg.Password,
		http:         &http.Client{Transport: transport},
		breaker:      breaker,
		timeout:      cfg.UpstreamTimeout,
		log:          log,
		maxRetries:   3,
		retryWaitMin: time.Second,
		retryWaitMax: 5 * time.Second,
	}
}

func apiBaseURL(shopURL, version string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(shopURL, "https://"), "http://")
	host = strings.TrimRight(host, "/")
	return fmt.Sprintf("https://%s/admin/api/%s", host, version)
}

// Products fetches one page of products, capped at the API page limit.
func (c *Client) Products(ctx context.Context, limit int) ([]Product, error) {
	var env struct {
		Products []Product `json:"products"`
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	if err := c.get(ctx, "/products.json", q, &env); err != nil {
		return nil, err
	}
	return env.Products, nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (Product, error) {
	var env struct {
		Product Product `json:"product"`
	}
	err := c.get(ctx, "/products/"+url.PathEscape(id)+".json", nil, &env)
	return env.Product, err
}

func (c *Client) Customers(ctx context.Context, limit int) ([]Customer, error) {
	var env struct {
		Customers []Customer `json:"customers"`
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	if err := c.get(ctx, "/customers.json", q, &env); err != nil {
		return nil, err
	}
	return env.Customers, nil
}

func (c *Client) CustomerByID(ctx context.Context, id string) (Customer, error) {
	var env struct {
		Customer Customer `json:"customer"`
	}
	err := c.get(ctx, "/customers/"+url.PathEscape(id)+".json", nil, &env)
	return env.Customer, err
}

// Orders fetches one page of orders in any fulfillment state.
func (c *Client) Orders(ctx context.Context, limit int) ([]Order, error) {
	var env struct {
		Orders []Order `json:"orders"`
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	q.Set("status", "any")
	if err := c.get(ctx, "/orders.json", q, &env); err != nil {
		return nil, err
	}
	return env.Orders, nil
}

// CurrentShop fetches the shop singleton. Also used as the startup
// connectivity check.
func (c *Client) CurrentShop(ctx context.Context) (Shop, error) {
	var env struct {
		Shop Shop `json:"shop"`
	}
	err := c.get(ctx, "/shop.json", nil, &env)
	return env.Shop, err
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// get performs a bounded GET against the Admin API and decodes the JSON
// envelope into out. Retries 5xx and transient network failures; 404 maps
// to ErrNotFound, deadline overruns to ErrTimeout.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	full := c.baseURL + path
	if enc := query.Encode(); enc != "" {
		full += "?" + enc
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > c.retryWaitMax {
				wait = c.retryWaitMax
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return c.classify(ctx.Err(), path)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return fmt.Errorf("shopify: build request for %s: %w", path, err)
		}
		req.Header.Set("Accept", "application/json")
		if c.accessToken != "" {
			req.Header.Set("X-Shopify-Access-Token", c.accessToken)
		} else {
			req.SetBasicAuth(c.apiKey, c.password)
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			return c.http.Do(req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return fmt.Errorf("shopify: circuit open for %s: %w", path, err)
			}
			lastErr = err
			if isRetryable(err) && attempt < c.maxRetries {
				c.log.Warnw("shopify request retry", "path", path, "attempt", attempt+1, "err", err)
				continue
			}
			return c.classify(err, path)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			drain(resp)
			return ErrNotFound
		case resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented && attempt < c.maxRetries:
			drain(resp)
			lastErr = fmt.Errorf("shopify: %s returned %d", path, resp.StatusCode)
			c.log.Warnw("shopify server error, retrying", "path", path, "status", resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			drain(resp)
			return fmt.Errorf("shopify: %s returned %d", path, resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		drain(resp)
		if err != nil {
			return fmt.Errorf("shopify: decode %s response: %w", path, err)
		}
		return nil
	}
	return c.classify(lastErr, path)
}

func (c *Client) classify(err error, path string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("shopify: request %s failed: %w", path, err)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<20))
	_ = resp.Body.Close()
}
