// Package shopify implements the outbound Admin API client. Every tool
// handler funnels its vendor calls through here; the package owns URL
// construction, authentication, status handling and the vendor-JSON to
// contract mapping.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"shopmcp/internal/domain"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// MetricsObserver receives one observation per outbound request.
type MetricsObserver interface {
	ObserveUpstream(api string, status string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveUpstream(string, string) {}

type Options struct {
	// StoreDomain is the store hostname. A value carrying an explicit
	// scheme (http://...) is used verbatim, which test servers rely on.
	StoreDomain string
	AccessToken string
	APIVersion  string
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Metrics     MetricsObserver
}

type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
	gql        *graphql.Client
	logger     *zap.Logger
	metrics    MetricsObserver
}

func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := opts.StoreDomain
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	endpoint := fmt.Sprintf("%s/admin/api/%s/graphql.json", baseURL, opts.APIVersion)

	return &Client{
		baseURL:    baseURL,
		token:      opts.AccessToken,
		apiVersion: opts.APIVersion,
		httpClient: httpClient,
		gql:        graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		logger:     logger.Named("shopify"),
		metrics:    metrics,
	}
}

func (c *Client) restURL(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)
}

// doREST issues one Admin REST call. A nil body sends no payload; out may be
// nil when the response body is irrelevant.
func (c *Client) doREST(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.restURL(path), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream("rest", "transport_error")
		return fmt.Errorf("shopify rest request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.ObserveUpstream("rest", strconv.Itoa(resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := &domain.UpstreamError{
			API:        "rest",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     vendorErrorDetail(raw),
		}
		c.logger.Warn("rest call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return upErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("shopify returned a malformed response body: %w", err)
	}
	return nil
}

func (c *Client) runGraphQL(ctx context.Context, req *graphql.Request, out any) error {
	req.Header.Set(accessTokenHeader, c.token)
	if err := c.gql.Run(ctx, req, out); err != nil {
		c.metrics.ObserveUpstream("graphql", "error")
		return &domain.UpstreamError{
			API:    "graphql",
			Status: "error",
			Detail: err.Error(),
		}
	}
	c.metrics.ObserveUpstream("graphql", "ok")
	return nil
}

// vendorErrorDetail flattens the "errors" member of a vendor error body into
// one string. The vendor emits it as a string, an array, or a map of arrays
// depending on the endpoint; all three shapes are handled.
func vendorErrorDetail(raw []byte) string {
	var payload struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Errors) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(payload.Errors, &asString); err == nil {
		return asString
	}
	var asList []string
	if err := json.Unmarshal(payload.Errors, &asList); err == nil {
		return strings.Join(asList, "; ")
	}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(payload.Errors, &asMap); err == nil {
		parts := make([]string, 0, len(asMap))
		for field, value := range asMap {
			var values []string
			if err := json.Unmarshal(value, &values); err == nil {
				parts = append(parts, field+": "+strings.Join(values, "; "))
				continue
			}
			var single string
			if err := json.Unmarshal(value, &single); err == nil {
				parts = append(parts, field+": "+single)
			}
		}
		return strings.Join(parts, "; ")
	}
	return string(payload.Errors)
}
