package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fjod/cart-store/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// HTTPClient reads stock and products from a REST inventory exposing
// GET /stock/{id} and GET /products/{id}.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	sfg     singleflight.Group // collapses identical in-flight lookups
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid inventory base url %q: scheme and host are required", baseURL)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *HTTPClient) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	id := strconv.FormatInt(productID, 10)

	v, err := c.shared(ctx, "stock/"+id, func(ctx context.Context) (any, error) {
		var stock domain.Stock
		if err := c.getJSON(ctx, &stock, "stock", id); err != nil {
			return nil, err
		}
		return stock, nil
	})
	if err != nil {
		return domain.Stock{}, err
	}

	stock := v.(domain.Stock)
	stock.ProductID = productID
	return stock, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	id := strconv.FormatInt(productID, 10)

	v, err := c.shared(ctx, "products/"+id, func(ctx context.Context) (any, error) {
		var product domain.Product
		if err := c.getJSON(ctx, &product, "products", id); err != nil {
			return nil, err
		}
		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return v.(domain.Product), nil
}

// shared runs fetch once per key for all concurrent callers. The request is
// detached from the caller that started it, so one caller giving up does not
// fail the others; it is still bounded by the client timeout.
func (c *HTTPClient) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := c.sfg.DoChan(key, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", key, ctx.Err())
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, out any, elem ...string) error {
	u := c.baseURL.JoinPath(elem...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: %w", u.Path, ErrProductNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: unexpected status %d", u.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u.Path, err)
	}
	return nil
}
