package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"product-feed/internal/models"
)

const (
	publishableKeyHeader = "x-publishable-api-key"
	defaultRetryBackoff  = 200 * time.Millisecond
	maxErrorBody         = 2048
)

// StatusError representa una respuesta no-2xx de la API de tienda
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("store api responded %d", e.StatusCode)
	}
	return fmt.Sprintf("store api responded %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// StoreClient consulta /store/products del backend de comercio
type StoreClient struct {
	baseURL        string
	publishableKey string
	maxRetries     int
	backoff        time.Duration
	httpClient     *http.Client
}

type StoreOption func(*StoreClient)

func WithHTTPClient(c *http.Client) StoreOption {
	return func(s *StoreClient) { s.httpClient = c }
}

func WithMaxRetries(n int) StoreOption {
	return func(s *StoreClient) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

func WithRetryBackoff(d time.Duration) StoreOption {
	return func(s *StoreClient) { s.backoff = d }
}

func NewStoreClient(baseURL, publishableKey string, opts ...StoreOption) *StoreClient {
	c := &StoreClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		maxRetries:     3,
		backoff:        defaultRetryBackoff,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listProductsResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// List obtiene una página de productos con proyección de campos
func (c *StoreClient) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	endpoint := c.baseURL + "/store/products?" + c.query(q).Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "list products")
			}
		}

		products, retry, err := c.do(ctx, endpoint)
		if err == nil {
			return products, nil
		}
		lastErr = err
		if !retry {
			break
		}
		log.Printf("[catalog] list products attempt=%d failed: %v", attempt+1, err)
	}

	return nil, errors.Wrap(lastErr, "list products")
}

func (c *StoreClient) query(q ListQuery) url.Values {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("offset", strconv.Itoa(q.Offset))
	if len(q.Fields) > 0 {
		values.Set("fields", strings.Join(q.Fields, ","))
	}
	return values
}

// do ejecuta una petición; el bool indica si vale la pena reintentar
func (c *StoreClient) do(ctx context.Context, endpoint string) ([]models.Product, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.publishableKey != "" {
		req.Header.Set(publishableKeyHeader, c.publishableKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		return nil, statusErr.retryable(), statusErr
	}

	var payload listProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, errors.Wrap(err, "decode products payload")
	}
	if payload.Products == nil {
		return nil, false, errors.New("malformed payload: missing products")
	}
	return payload.Products, false, nil
}
