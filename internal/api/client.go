// Package api is the HTTP client for the policy portal backend. It
// normalizes transport failures and non-2xx responses into errors the
// orchestrators can branch on; it never retries — fallback behavior is
// the caller's responsibility.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"govlens/internal/portal"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 30 * time.Second

// Client talks to the portal API at a fixed base URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues a single JSON request and decodes the response into out.
// A non-2xx status becomes *Error; transport failures and malformed
// response bodies become *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Path: path, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			// A 2xx with an undecodable body is still a backend failure.
			return &TransportError{Op: method + " " + path, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// ListDocuments fetches one page of the document catalog. category may
// be empty to list everything.
func (c *Client) ListDocuments(ctx context.Context, page int, category portal.Category) (*portal.DocumentList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if category != "" {
		q.Set("category", string(category))
	}
	var list portal.DocumentList
	if err := c.do(ctx, http.MethodGet, "/documents", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDocument fetches the full details of one document.
func (c *Client) GetDocument(ctx context.Context, id string) (*portal.Document, error) {
	var doc portal.Document
	if err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetTimeline fetches the before/change/result timeline for a document.
func (c *Client) GetTimeline(ctx context.Context, id, language string) (*portal.Timeline, error) {
	q := url.Values{}
	if language != "" {
		q.Set("language", language)
	}
	var tl portal.Timeline
	if err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id)+"/timeline", q, nil, &tl); err != nil {
		return nil, err
	}
	return &tl, nil
}

// AskRequest is the body of an /ask call.
type AskRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

// AskDocument asks a question scoped to a single document.
func (c *Client) AskDocument(ctx context.Context, id string, req AskRequest) (*portal.Answer, error) {
	var ans portal.Answer
	if err := c.do(ctx, http.MethodPost, "/documents/"+url.PathEscape(id)+"/ask", nil, req, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

// Ask asks a question across all indexed documents.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*portal.Answer, error) {
	var ans portal.Answer
	if err := c.do(ctx, http.MethodPost, "/ask", nil, req, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

// FactCheckRequest is the body of a /fact-check call.
type FactCheckRequest struct {
	Claim    string `json:"claim"`
	Language string `json:"language"`
}

// CheckClaim verifies a claim against the document index.
func (c *Client) CheckClaim(ctx context.Context, req FactCheckRequest) (*portal.FactCheckResult, error) {
	var res portal.FactCheckResult
	if err := c.do(ctx, http.MethodPost, "/fact-check", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// URLFactCheckRequest is the body of a /fact-check-url call.
type URLFactCheckRequest struct {
	URL               string `json:"url"`
	AdditionalContext string `json:"additional_context,omitempty"`
	Language          string `json:"language"`
}

// CheckURL fact-checks content extracted from a URL.
func (c *Client) CheckURL(ctx context.Context, req URLFactCheckRequest) (*portal.URLFactCheckResult, error) {
	var res portal.URLFactCheckResult
	if err := c.do(ctx, http.MethodPost, "/fact-check-url", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// TranslateRequest is the body of a /translate call.
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

// TranslateResponse is the backend's translation result.
type TranslateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Translate translates text to the target language.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	var res TranslateResponse
	if err := c.do(ctx, http.MethodPost, "/translate", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
