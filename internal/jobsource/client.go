package jobsource

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rightdoers/doers-matcher/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	userAgent       = "rightdoers/doers-matcher"

	defaultTimeout = 30 * time.Second
	// Pause before the single retry of a throttled request when the API
	// does not say how long to wait.
	defaultRetryAfter = 2 * time.Second
	maxRetryAfter     = 30 * time.Second

	errorPreviewBytes = 4096
	errorPreviewRunes = 300
)

// Client is a small JSON-over-HTTP client shared by the job sources.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewClient returns a client for baseURL. Requests are paced to at most
// rps per second; a non-positive rps disables pacing.
func NewClient(logger *zap.Logger, baseURL string, rps float64) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
		logger:    logger,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// getJSON performs a GET request against path and decodes the JSON body
// into target. A 429 answer is retried once after the advertised delay.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, headers http.Header, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req, headers)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := min(utils.RetryAfter(resp.Header.Get("Retry-After"), time.Now(), defaultRetryAfter), maxRetryAfter)
		resp.Body.Close()

		c.logger.Warn("rate limited by job source, retrying once",
			zap.String("host", req.URL.Host),
			zap.Duration("wait", wait),
		)

		if err := utils.WaitFor(ctx, wait); err != nil {
			return err
		}

		resp, err = c.request(ctx, req.Clone(ctx))
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorPreviewBytes))
		c.logger.Debug("unexpected response",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(preview), errorPreviewRunes)),
		)
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	dec := json.NewDecoder(reader)
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) request(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("make request", zap.String("url", redactQuery(req.URL)))

	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request, extra http.Header) {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	for key, values := range extra {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
}

// redactQuery hides credentials passed as query parameters.
func redactQuery(u *url.URL) string {
	q := u.Query()
	for _, key := range []string{"app_key", "app_id"} {
		if q.Has(key) {
			q.Set(key, "REDACTED")
		}
	}

	redacted := *u
	redacted.RawQuery = q.Encode()
	return redacted.String()
}
