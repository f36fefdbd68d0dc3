package swimming

import (
	"context"
	"fmt"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const portalOrigin = "https://vysledky.czechswimming.cz"

// browserHeaders are sent with every request; the portal rejects clients that
// do not look like its own web frontend. Accept-Encoding is left to the
// transport so responses are decompressed transparently.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         portalOrigin + "/",
	"Origin":          portalOrigin,
	"DNT":             "1",
	"Sec-Fetch-Dest":  "empty",
	"Sec-Fetch-Mode":  "cors",
	"Sec-Fetch-Site":  "same-origin",
	"Cache-Control":   "max-age=0",
}

// Options configures an APIClient.
type Options struct {
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
	// Interval is the minimum spacing between consecutive requests.
	Interval time.Duration
}

// APIClient queries the person search endpoint of the results portal.
type APIClient struct {
	http    *resty.Client
	BaseURL string
}

// Ensure APIClient implements the SearchClient interface.
var _ SearchClient = (*APIClient)(nil)

// NewClient creates a client with the browser header set, the request timeout
// and the request throttle applied. The client is meant to be built once and
// reused so that connections are kept alive between lookups.
func NewClient(opts Options) *APIClient {
	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeaders(browserHeaders)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	// burst 1: every request after the first waits a full interval
	limiter := rate.NewLimiter(rate.Every(opts.Interval), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &APIClient{
		http:    httpClient,
		BaseURL: opts.BaseURL,
	}
}

// Search runs a person search for query and returns the decoded result list.
func (c *APIClient) Search(ctx context.Context, query string) ([]Person, error) {
	log.Debug("Requesting person search", "url", c.BaseURL, "query", query)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if !resp.IsSuccess() {
		log.Debug("Received non-OK HTTP status from portal", "status", resp.StatusCode(), "body", resp.String())
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	people, err := decodePeople(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	log.Debug("Person search finished", "query", query, "count", len(people), "duration", resp.Time())
	return people, nil
}
