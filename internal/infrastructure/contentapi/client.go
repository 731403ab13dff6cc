package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmanzanog/folio/internal/domain"
)

const (
	DefaultTimeout = 15 * time.Second

	blogPath      = "/blog"
	portfolioPath = "/portfolio"

	sessionExpiredMessage = "Session expired. Please login again."
)

// Authorizer supplies the admin marker sent as a Bearer token and forgets it
// when the server rejects it.
type Authorizer interface {
	Marker(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// Client talks to the content REST API. It performs exactly one HTTP call per
// operation; retrying is the caller's concern.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authorizer Authorizer
	now        func() time.Time
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// SetAuthorizer enables the Authorization header on every request.
func (c *Client) SetAuthorizer(a Authorizer) {
	c.authorizer = a
}

type BlogResource = Resource[domain.BlogPost, domain.BlogPostDraft, domain.BlogPostPatch]

type PortfolioResource = Resource[domain.PortfolioItem, domain.PortfolioItemDraft, domain.PortfolioItemPatch]

func (c *Client) Blog() *BlogResource {
	return &BlogResource{client: c, path: blogPath}
}

func (c *Client) Portfolio() *PortfolioResource {
	return &PortfolioResource{client: c, path: portfolioPath}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) requestURL(path string) string {
	params := url.Values{}
	params.Add("_t", strconv.FormatInt(c.now().UnixMilli(), 10))
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewError(domain.ErrorKindUnknown, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := c.requestURL(path)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return domain.NewError(domain.ErrorKindUnknown, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: refused, reset, DNS failure or timeout.
		return domain.NewError(domain.ErrorKindNetwork, "", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr, "url", reqURL)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(ctx, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewError(domain.ErrorKindUnknown, "failed to decode response", err)
	}
	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.authorizer == nil {
		return
	}
	marker, ok, err := c.authorizer.Marker(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read admin marker", "error", err)
		return
	}
	if ok && marker != "" {
		req.Header.Set("Authorization", "Bearer "+marker)
	}
}

func (c *Client) classify(ctx context.Context, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var msg messageResponse
	_ = json.Unmarshal(body, &msg)

	derr := &domain.Error{
		Kind:       domain.ErrorKindServer,
		Message:    msg.Message,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("API returned status %d", resp.StatusCode),
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		derr.Kind = domain.ErrorKindNotFound
	case http.StatusUnauthorized:
		derr.Message = sessionExpiredMessage
		if c.authorizer != nil {
			if err := c.authorizer.Clear(ctx); err != nil {
				slog.WarnContext(ctx, "failed to clear admin marker", "error", err)
			}
		}
	}

	return derr
}
