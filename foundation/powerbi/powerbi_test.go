package powerbi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jcpaschoal/biadmin/foundation/powerbi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	tokens     atomic.Int32
	workspaces atomic.Int32
	generated  atomic.Int32
	lastLevel  atomic.Value
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		f.tokens.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "service-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	api := http.NewServeMux()

	api.HandleFunc("GET /groups", func(w http.ResponseWriter, r *http.Request) {
		f.workspaces.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{"id": "ws-1", "name": "Finance"}},
		})
	})

	api.HandleFunc("GET /groups/{ws}/reports", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{"id": "rpt-1", "name": "Sales", "embedUrl": "https://embed/rpt-1"}},
		})
	})

	api.HandleFunc("GET /groups/{ws}/reports/{rpt}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("rpt") {
		case "rpt-1":
			json.NewEncoder(w).Encode(map[string]any{"id": "rpt-1", "name": "Sales", "embedUrl": "https://embed/rpt-1"})
		case "throttled":
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "TooManyRequests", "message": "slow down"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	api.HandleFunc("POST /groups/{ws}/reports/{rpt}/GenerateToken", func(w http.ResponseWriter, r *http.Request) {
		f.generated.Add(1)

		var req struct {
			AccessLevel string `json:"accessLevel"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.lastLevel.Store(req.AccessLevel)

		json.NewEncoder(w).Encode(map[string]any{
			"token":      "embed-token",
			"tokenId":    "tkn-1",
			"expiration": "2030-01-01T00:00:00Z",
		})
	})

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer service-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.StripPrefix("/api", api).ServeHTTP(w, r)
	})

	return mux
}

func newClient(t *testing.T) (*powerbi.Client, *fakeAPI) {
	t.Helper()

	f := &fakeAPI{}
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	c, err := powerbi.New(powerbi.Config{
		TenantID:     "contoso",
		ClientID:     "client",
		ClientSecret: "secret",
		APIURL:       srv.URL + "/api",
		TokenURL:     srv.URL + "/token",
		CacheTTL:     time.Minute,
	})
	require.NoError(t, err)

	return c, f
}

func TestNewNotConfigured(t *testing.T) {
	_, err := powerbi.New(powerbi.Config{})
	assert.ErrorIs(t, err, powerbi.ErrNotConfigured)

	_, err = powerbi.New(powerbi.Config{TenantID: "common", ClientID: "c", ClientSecret: "s"})
	assert.ErrorIs(t, err, powerbi.ErrNotConfigured)
}

func TestListWorkspacesCached(t *testing.T) {
	ctx := context.Background()
	c, f := newClient(t)

	for range 3 {
		wss, err := c.ListWorkspaces(ctx)
		require.NoError(t, err)
		require.Len(t, wss, 1)
		assert.Equal(t, "Finance", wss[0].Name)
	}

	assert.Equal(t, int32(1), f.workspaces.Load())
	assert.Equal(t, int32(1), f.tokens.Load())
}

func TestListReports(t *testing.T) {
	c, _ := newClient(t)

	rpts, err := c.ListReports(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, rpts, 1)
	assert.Equal(t, "ws-1", rpts[0].WorkspaceID)
}

func TestQueryReportErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	_, err := c.QueryReport(ctx, "ws-1", "missing")
	assert.ErrorIs(t, err, powerbi.ErrNotFound)

	_, err = c.QueryReport(ctx, "ws-1", "throttled")
	var apiErr *powerbi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "TooManyRequests", apiErr.Code)
}

func TestGenerateEmbedToken(t *testing.T) {
	ctx := context.Background()
	c, f := newClient(t)

	for range 2 {
		tkn, err := c.GenerateEmbedToken(ctx, "ws-1", "rpt-1", powerbi.View)
		require.NoError(t, err)
		assert.Equal(t, "embed-token", tkn.AccessToken)
		assert.Equal(t, "rpt-1", tkn.EmbedID)
		assert.Equal(t, "https://embed/rpt-1", tkn.EmbedURL)
		assert.Equal(t, 2030, tkn.Expiration.Year())
	}

	assert.Equal(t, int32(2), f.generated.Load())
	assert.Equal(t, "View", f.lastLevel.Load())
}

func TestParseAccessLevel(t *testing.T) {
	al, err := powerbi.ParseAccessLevel("")
	require.NoError(t, err)
	assert.Equal(t, powerbi.View, al)

	al, err = powerbi.ParseAccessLevel("Edit")
	require.NoError(t, err)
	assert.Equal(t, powerbi.Edit, al)

	_, err = powerbi.ParseAccessLevel("Admin")
	assert.Error(t, err)
}
