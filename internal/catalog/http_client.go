package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/kshop/internal/domain"
	"github.com/fjod/kshop/pkg/circuitbreaker"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodySize = 4 << 20 // 4MB

// HTTPClient reads a fakestoreapi compatible catalog.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: circuitbreaker.New[[]byte]("catalog", breakerSuccess),
	}
}

// breakerSuccess keeps not-found answers and abandoned lookups from
// tripping the breaker.
func breakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, context.Canceled)
}

func (c *HTTPClient) Fetch(ctx context.Context, id int64) (*domain.Product, error) {
	body, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}

	// fakestoreapi answers unknown ids with 200 and an empty body
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNotFound
	}

	var p domain.Product
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, newTransportError(errors.Wrap(err, "decode product"))
	}
	if p.ID == 0 {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, newTransportError(errors.Wrap(err, "decode products"))
	}
	return products, nil
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, newTransportError(err)
	}
	return body, err
}

func (c *HTTPClient) do(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, newTransportError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newTransportError(errors.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newTransportError(errors.Wrap(err, "read body"))
	}
	return body, nil
}
