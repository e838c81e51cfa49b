package menuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/pkg/httpclient"
)

// Client performs exactly one HTTP request per operation against a single
// deployment. It holds no mutable state and is safe for concurrent use.
type Client struct {
	cfg  Config
	http httpclient.Client
	log  Logger
}

var _ API = (*Client)(nil)

// New builds a client for cfg. A nil httpClient gets a resty transport with
// cfg.Timeout; a nil log disables request logging.
func New(cfg Config, httpClient httpclient.Client, log Logger) (*Client, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, fmt.Errorf("menu api config: %w", err)
	}
	if httpClient == nil {
		httpClient = httpclient.NewRestyClient(cfg.Timeout)
	}
	if log == nil {
		log = noopLogger{}
	}
	return &Client{cfg: cfg, http: httpClient, log: log}, nil
}

// Config returns the normalized deployment configuration.
func (c *Client) Config() Config { return c.cfg }

// ImageURL joins the configured image-base URL with a relative image path.
func (c *Client) ImageURL(path string) string { return c.cfg.ImageURL(path) }

// ListCategories returns the data field of GET /category.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return unwrapData[[]domain.Category](ctx, c, "list categories", c.endpoint("/category"))
}

// GetCategory returns the envelope of GET /category/{id}.
func (c *Client) GetCategory(ctx context.Context, id string) (domain.Envelope[domain.Category], error) {
	return fetchEnvelope[domain.Category](ctx, c, "get category", "/category", id)
}

// ListOffers returns the data field of GET /offers/slider.
func (c *Client) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	return unwrapData[[]domain.Offer](ctx, c, "list offers", c.endpoint("/offers/slider"))
}

// GetOfferDetails returns the data field of GET /offers/slider/{id}, items included.
func (c *Client) GetOfferDetails(ctx context.Context, id string) (domain.Offer, error) {
	const op = "get offer details"
	if err := checkID(op, id); err != nil {
		return domain.Offer{}, err
	}
	return unwrapData[domain.Offer](ctx, c, op, c.endpoint("/offers/slider", id))
}

// ListSubCategoriesByCategory returns the data field of
// GET /subcategory/category/{id}. A body without data yields an empty slice.
func (c *Client) ListSubCategoriesByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	const op = "list subcategories by category"
	if err := checkID(op, categoryID); err != nil {
		return nil, err
	}

	u := c.endpoint("/subcategory/category", categoryID)
	body, status, err := c.get(ctx, op, u)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, decodeError(op, http.MethodGet, u, status, fmt.Errorf("invalid json body: %s", bodySnippet(body)))
	}
	data, ok := lookupData(body)
	if !ok {
		return []domain.SubCategory{}, nil
	}
	out := []domain.SubCategory{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, decodeError(op, http.MethodGet, u, status, err)
	}
	return out, nil
}

// GetSubCategory returns the envelope of GET /subcategory/{id}.
func (c *Client) GetSubCategory(ctx context.Context, id string) (domain.Envelope[domain.SubCategory], error) {
	return fetchEnvelope[domain.SubCategory](ctx, c, "get subcategory", "/subcategory", id)
}

// ListProductsBySubCategory returns the envelope of the products-by-subcategory
// endpoint, whose path depends on the deployment route style.
func (c *Client) ListProductsBySubCategory(ctx context.Context, subCategoryID string) (domain.Envelope[[]domain.Product], error) {
	return fetchEnvelope[[]domain.Product](ctx, c, "list products by subcategory", "/product/"+string(c.cfg.ProductsBySubCategoryRoute), subCategoryID)
}

// ListProductsByCategory returns the envelope of GET /product/category/{id}.
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) (domain.Envelope[[]domain.Product], error) {
	return fetchEnvelope[[]domain.Product](ctx, c, "list products by category", "/product/category", categoryID)
}

// GetProduct returns the envelope of GET /product/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Envelope[domain.Product], error) {
	return fetchEnvelope[domain.Product](ctx, c, "get product", "/product", id)
}

// SubmitReview posts the review as JSON and returns the acknowledgement body.
// On rejection the returned error carries the server message, see Message.
func (c *Client) SubmitReview(ctx context.Context, review domain.Review) (domain.Envelope[json.RawMessage], error) {
	const op = "submit review"
	u := c.endpoint("/review")

	start := time.Now()
	resp, err := c.http.Post(ctx, u, c.cfg.Headers, review)
	if err != nil {
		return domain.Envelope[json.RawMessage]{}, c.transportError(op, http.MethodPost, u, err)
	}
	body, _, err := c.checkResponse(op, http.MethodPost, u, resp, start)
	if err != nil {
		return domain.Envelope[json.RawMessage]{}, err
	}
	return decodeAck(body), nil
}

// decodeAck accepts any 2xx body. Data and message are filled in only when
// the body is a JSON object; Raw always carries the body.
func decodeAck(body []byte) domain.Envelope[json.RawMessage] {
	var ack domain.Envelope[json.RawMessage]
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &ack); err != nil {
			ack = domain.Envelope[json.RawMessage]{}
		}
	}
	if len(body) > 0 {
		ack.Raw = append(json.RawMessage(nil), body...)
	}
	return ack
}

// endpoint joins the base URL, a fixed path and escaped id segments.
func (c *Client) endpoint(path string, ids ...string) string {
	var b strings.Builder
	b.WriteString(c.cfg.BaseURL)
	b.WriteString(path)
	for _, id := range ids {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(id))
	}
	return b.String()
}

func (c *Client) get(ctx context.Context, op, u string) ([]byte, int, error) {
	start := time.Now()
	resp, err := c.http.Get(ctx, u, c.cfg.Headers)
	if err != nil {
		return nil, 0, c.transportError(op, http.MethodGet, u, err)
	}
	return c.checkResponse(op, http.MethodGet, u, resp, start)
}

func (c *Client) checkResponse(op, method, u string, resp httpclient.Response, start time.Time) ([]byte, int, error) {
	body := resp.Body()
	status := resp.StatusCode()
	c.log.DebugObj("menu api request", "menu_request", map[string]any{
		"op":         op,
		"method":     method,
		"url":        u,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if status < 200 || status > 299 {
		return nil, status, &RequestError{
			Op:         op,
			Method:     method,
			URL:        u,
			StatusCode: status,
			Message:    serverMessage(body),
			Body:       bodySnippet(body),
			Err:        ErrStatus,
		}
	}
	return body, status, nil
}

func (c *Client) transportError(op, method, u string, err error) error {
	c.log.DebugObj("menu api request failed", "menu_request_error", map[string]any{
		"op":     op,
		"method": method,
		"url":    u,
		"error":  err.Error(),
	})
	return &RequestError{Op: op, Method: method, URL: u, Err: err}
}

func fetchEnvelope[T any](ctx context.Context, c *Client, op, path, id string) (domain.Envelope[T], error) {
	if err := checkID(op, id); err != nil {
		return domain.Envelope[T]{}, err
	}
	u := c.endpoint(path, id)
	body, status, err := c.get(ctx, op, u)
	if err != nil {
		return domain.Envelope[T]{}, err
	}
	return decodeEnvelope[T](op, http.MethodGet, u, status, body)
}

func decodeEnvelope[T any](op, method, u string, status int, body []byte) (domain.Envelope[T], error) {
	var env domain.Envelope[T]
	if len(bytes.TrimSpace(body)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.Envelope[T]{}, decodeError(op, method, u, status, err)
	}
	env.Raw = append(json.RawMessage(nil), body...)
	return env, nil
}

func unwrapData[T any](ctx context.Context, c *Client, op, u string) (T, error) {
	var out T
	body, status, err := c.get(ctx, op, u)
	if err != nil {
		return out, err
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return out, decodeError(op, http.MethodGet, u, status, err)
		}
	}
	if isAbsent(env.Data) {
		return out, &RequestError{Op: op, Method: http.MethodGet, URL: u, StatusCode: status, Err: ErrMissingData}
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, decodeError(op, http.MethodGet, u, status, err)
	}
	return out, nil
}

// lookupData returns the data field of a parseable body. Bodies that are not
// objects, or whose data is missing or falsy, report ok=false.
func lookupData(body []byte) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, false
	}
	data, ok := obj["data"]
	if !ok || isFalsy(data) {
		return nil, false
	}
	return data, true
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isFalsy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return true
	}
	switch string(bytes.TrimSpace(raw)) {
	case "false", "0", `""`:
		return true
	}
	return false
}

func decodeError(op, method, u string, status int, err error) error {
	return &RequestError{Op: op, Method: method, URL: u, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
}

func checkID(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return &RequestError{Op: op, Err: ErrEmptyID}
	}
	return nil
}
