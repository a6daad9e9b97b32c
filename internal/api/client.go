package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gateway is the remote CRUD surface the sync controller depends on.
// It is implemented by *Client and by fakes in tests.
type Gateway interface {
	List(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, title string) (Todo, error)
	Update(ctx context.Context, id string, patch Patch) (Todo, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the todos HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "checkoff/dev"

// Options tune the HTTP client.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout   time.Duration
	UserAgent string
}

// NewClient builds a Client rooted at baseURL, the collection endpoint.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: ua,
	}, nil
}

// BaseURL returns the collection endpoint the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List retrieves the whole collection in server order.
func (c *Client) List(ctx context.Context) ([]Todo, error) {
	var payload ListResponse
	if err := c.do(ctx, OpList, http.MethodGet, c.baseURL, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Todos == nil {
		return []Todo{}, nil
	}
	return payload.Todos, nil
}

// Create adds a todo with the given title.
func (c *Client) Create(ctx context.Context, title string) (Todo, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	var payload TodoResponse
	if err := c.do(ctx, OpCreate, http.MethodPost, c.baseURL, body, &payload); err != nil {
		return Todo{}, err
	}
	return payload.Todo, nil
}

// Update applies a partial patch to the todo identified by id.
func (c *Client) Update(ctx context.Context, id string, patch Patch) (Todo, error) {
	if !validID(id) {
		return Todo{}, ErrInvalidID
	}
	if patch.IsEmpty() {
		return Todo{}, ErrEmptyPatch
	}
	var payload TodoResponse
	if err := c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(id), patch, &payload); err != nil {
		return Todo{}, err
	}
	return payload.Todo, nil
}

// Delete removes the todo identified by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidID
	}
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

// itemURL appends one escaped segment to the collection path. The result is
// never cleaned, so the id cannot climb out of the collection.
func (c *Client) itemURL(id string) *url.URL {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + id
	u.RawPath = c.baseURL.EscapedPath() + "/" + url.PathEscape(id)
	return &u
}

// validID rejects ids that are blank or that a path resolver would treat as
// the collection itself or its parent.
func validID(id string) bool {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, op Op, method string, target *url.URL, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("req_id=%s method=%s path=%s err=%q dur=%s", reqID, method, target.Path, err, time.Since(start))
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	log.Printf("req_id=%s method=%s path=%s status=%d dur=%s", reqID, method, target.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &StatusError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readErrorMessage extracts the "error" field from a failure body verbatim.
// Bodies that are empty, not JSON, or carry only whitespace yield "".
func readErrorMessage(r io.Reader) string {
	var payload ErrorResponse
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if strings.TrimSpace(payload.Error) == "" {
		return ""
	}
	return payload.Error
}

// ParseBaseURL validates a collection endpoint. It must be an absolute
// http or https URL; a trailing slash is dropped.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
