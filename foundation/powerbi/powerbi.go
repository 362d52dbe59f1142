// Package powerbi is a client for the Power BI REST API. It authenticates
// as a service principal with the client credentials flow.
package powerbi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// Defaults used when the configuration leaves a value empty.
const (
	DefaultScope  = "https://analysis.windows.net/powerbi/api/.default"
	DefaultAPIURL = "https://api.powerbi.com/v1.0/myorg"

	authorityURL = "https://login.microsoftonline.com"
	earlyExpiry  = 5 * time.Minute
)

// Set of error variables returned by the client.
var (
	ErrNotConfigured = errors.New("bi client is not configured")
	ErrNotFound      = errors.New("bi resource not found")
)

// APIError is returned for any non success response other than not found.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bi api: status[%d] code[%s]: %s", e.StatusCode, e.Code, e.Message)
}

// Config holds what is needed to talk to the API.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Scope        string
	APIURL       string
	TokenURL     string
	CacheTTL     time.Duration
	Rate         float64
	HTTPClient   *http.Client
}

// Client talks to the Power BI REST API.
type Client struct {
	apiURL     string
	http       *http.Client
	limiter    *rate.Limiter
	workspaces *sturdyc.Client[[]Workspace]
	reports    *sturdyc.Client[[]Report]
	report     *sturdyc.Client[Report]
}

// New constructs a client. The access token is fetched lazily and reused
// until five minutes before it expires.
func New(cfg Config) (*Client, error) {
	tenant := strings.ToLower(strings.TrimSpace(cfg.TenantID))
	switch {
	case tenant == "", cfg.ClientID == "", cfg.ClientSecret == "":
		return nil, ErrNotConfigured
	case tenant == "common", tenant == "organizations", tenant == "consumers":
		return nil, fmt.Errorf("%w: tenant %q cannot be used with client credentials", ErrNotConfigured, cfg.TenantID)
	}

	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if cfg.TokenURL == "" {
		cfg.TokenURL = fmt.Sprintf("%s/%s/oauth2/v2.0/token", authorityURL, url.PathEscape(cfg.TenantID))
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}

	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{cfg.Scope},
	}

	// The token endpoint is called with a plain client so it is not rate
	// limited along with the API.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: base, Timeout: 10 * time.Second})
	src := oauth2.ReuseTokenSourceWithExpiry(nil, tokenSource{ctx: tokenCtx, cfg: &cc}, earlyExpiry)

	timeout := 30 * time.Second
	if cfg.HTTPClient != nil && cfg.HTTPClient.Timeout > 0 {
		timeout = cfg.HTTPClient.Timeout
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}

	c := Client{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   otelhttp.NewTransport(base),
			},
		},
		limiter:    rate.NewLimiter(limit, 1),
		workspaces: sturdyc.New[[]Workspace](100, 1, cfg.CacheTTL, 10),
		reports:    sturdyc.New[[]Report](1000, 4, cfg.CacheTTL, 10),
		report:     sturdyc.New[Report](5000, 8, cfg.CacheTTL, 10),
	}

	return &c, nil
}

// ListWorkspaces returns the workspaces the service principal can see.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	return c.workspaces.GetOrFetch(ctx, "workspaces", func(ctx context.Context) ([]Workspace, error) {
		var resp listResponse[Workspace]
		if err := c.do(ctx, http.MethodGet, "/groups", nil, &resp); err != nil {
			return nil, fmt.Errorf("list workspaces: %w", err)
		}

		return resp.Value, nil
	})
}

// ListReports returns the reports of a workspace.
func (c *Client) ListReports(ctx context.Context, workspaceID string) ([]Report, error) {
	return c.reports.GetOrFetch(ctx, workspaceID, func(ctx context.Context) ([]Report, error) {
		var resp listResponse[Report]
		if err := c.do(ctx, http.MethodGet, "/groups/"+url.PathEscape(workspaceID)+"/reports", nil, &resp); err != nil {
			return nil, fmt.Errorf("list reports: workspace[%s]: %w", workspaceID, err)
		}

		for i := range resp.Value {
			if resp.Value[i].WorkspaceID == "" {
				resp.Value[i].WorkspaceID = workspaceID
			}
		}

		return resp.Value, nil
	})
}

// QueryReport returns a single report of a workspace.
func (c *Client) QueryReport(ctx context.Context, workspaceID string, reportID string) (Report, error) {
	return c.report.GetOrFetch(ctx, workspaceID+"/"+reportID, func(ctx context.Context) (Report, error) {
		var rpt Report
		if err := c.do(ctx, http.MethodGet, reportPath(workspaceID, reportID), nil, &rpt); err != nil {
			return Report{}, fmt.Errorf("query report: workspace[%s] report[%s]: %w", workspaceID, reportID, err)
		}

		if rpt.WorkspaceID == "" {
			rpt.WorkspaceID = workspaceID
		}

		return rpt, nil
	})
}

// GenerateEmbedToken issues an embed token for the report. Tokens are
// never cached.
func (c *Client) GenerateEmbedToken(ctx context.Context, workspaceID string, reportID string, level AccessLevel) (EmbedToken, error) {
	rpt, err := c.QueryReport(ctx, workspaceID, reportID)
	if err != nil {
		return EmbedToken{}, err
	}

	req := generateTokenRequest{
		AccessLevel: level.String(),
		AllowSaveAs: level == Edit,
	}

	var resp generateTokenResponse
	if err := c.do(ctx, http.MethodPost, reportPath(workspaceID, reportID)+"/GenerateToken", req, &resp); err != nil {
		return EmbedToken{}, fmt.Errorf("generate token: workspace[%s] report[%s]: %w", workspaceID, reportID, err)
	}

	et := EmbedToken{
		EmbedURL:    rpt.EmbedURL,
		AccessToken: resp.Token,
		EmbedID:     reportID,
		Expiration:  resp.Expiration,
		TokenType:   "Bearer",
	}

	return et, nil
}

// =============================================================================

func (c *Client) do(ctx context.Context, method string, path string, body any, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, r)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound

	case resp.StatusCode >= http.StatusBadRequest:
		apiErr := APIError{StatusCode: resp.StatusCode}

		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Code = er.Error.Code
			apiErr.Message = er.Error.Message
		}

		return &apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func reportPath(workspaceID string, reportID string) string {
	return "/groups/" + url.PathEscape(workspaceID) + "/reports/" + url.PathEscape(reportID)
}

// tokenSource fetches a fresh token on every call. Reuse is left to
// oauth2.ReuseTokenSourceWithExpiry.
type tokenSource struct {
	ctx context.Context
	cfg *clientcredentials.Config
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	return ts.cfg.Token(ts.ctx)
}
