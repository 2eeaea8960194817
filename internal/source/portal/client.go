package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/nhle/notifywatch/internal/source"
)

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 512

// Client is a thin HTTP client for the portal's JSON endpoints. Requests
// carry the session cookie for the portal origin only and are marked as
// programmatic so the server does not treat them as page navigations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a portal client. cookieName and cookieValue describe the
// session cookie; an empty value sends no cookie.
func NewClient(baseURL, cookieName, cookieValue string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if cookieValue != "" {
		jar.SetCookies(base, []*http.Cookie{{
			Name:  cookieName,
			Value: cookieValue,
			Path:  "/",
		}})
	}

	return &Client{
		baseURL: base.String(),
		httpClient: &http.Client{
			Jar: jar,
			// A redirect means the session is gone and the portal is
			// sending us to its login page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// BaseURL returns the portal origin without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &source.StatusError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
	}

	return nil
}
