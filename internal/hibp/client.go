// Package hibp queries the Pwned Passwords range API using k-anonymity:
// only the first five characters of the SHA-1 digest ever leave the process,
// and the matching suffix is resolved locally.
package hibp

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dsolovey/passguard/internal/model"
)

const (
	DefaultBaseURL   = "https://api.pwnedpasswords.com/range/"
	DefaultUserAgent = "passguard/1.0"
	DefaultTimeout   = 3 * time.Second

	prefixLen = 5
)

// ErrUnexpectedStatus is returned when the range endpoint answers with a
// non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to a Pwned Passwords compatible range endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a client with the given request timeout. A zero or
// negative timeout falls back to DefaultTimeout; lookups must never hang
// indefinitely.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}
}

// WithBaseURL points the client at a different range endpoint. Used by tests
// and self-hosted mirrors.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c.baseURL = baseURL
	return c
}

// WithUserAgent overrides the User-Agent header sent with range queries.
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// Check reports whether password appears in known breach data. Errors are
// limited to transport, status and read failures; a clean "not found" is not
// an error.
func (c *Client) Check(ctx context.Context, password string) (model.PwnedPasswordMatch, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:prefixLen], digest[prefixLen:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return model.PwnedPasswordMatch{}, fmt.Errorf("failed to build range request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.PwnedPasswordMatch{}, fmt.Errorf("range request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.PwnedPasswordMatch{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PwnedPasswordMatch{}, fmt.Errorf("failed to read range response: %w", err)
	}

	return matchSuffix(string(body), suffix), nil
}

// matchSuffix scans a newline-delimited SUFFIX:COUNT body for the local
// suffix. Lines without a colon are skipped; an unparseable count still
// counts as pwned, with BreachCount 0.
func matchSuffix(body, suffix string) model.PwnedPasswordMatch {
	for _, line := range strings.Split(body, "\n") {
		remote, countField, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(remote), suffix) {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countField))
		if err != nil || count < 0 {
			count = 0
		}
		return model.PwnedPasswordMatch{IsPwned: true, BreachCount: count}
	}
	return model.PwnedPasswordMatch{}
}
