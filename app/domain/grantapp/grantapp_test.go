package grantapp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/domain/grantapp"
	"github.com/jcpaschoal/biadmin/app/sdk/auth"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/app/sdk/mid"
	"github.com/jcpaschoal/biadmin/app/sdk/query"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/sdk/dbtest"
	"github.com/jcpaschoal/biadmin/business/sdk/web"
	"github.com/jcpaschoal/biadmin/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	db         *dbtest.Database
	handler    http.Handler
	adminToken string
	auth       *auth.Auth
}

func newServer(t *testing.T) *server {
	t.Helper()

	db := dbtest.New(t)

	a, err := auth.New(auth.Config{
		Log:     db.Log,
		UserBus: db.BusDomain.User,
		Secret:  "test-secret",
		Issuer:  "biadmin test",
		TTL:     time.Hour,
	})
	require.NoError(t, err)

	app := web.NewApp(db.Log.Info, mid.Errors(db.Log), mid.Panics())
	grantapp.Routes(app, grantapp.Config{
		Auth:     a,
		GrantBus: db.BusDomain.Grant,
	})

	admin := db.SeedUser(t, nil)
	adminRole := role.Admin
	admin, err = db.BusDomain.User.Update(context.Background(), admin, userbus.UpdateUser{Role: &adminRole})
	require.NoError(t, err)

	tkn, err := a.GenerateToken(admin)
	require.NoError(t, err)

	return &server{
		db:         db,
		handler:    app,
		adminToken: tkn,
		auth:       a,
	}
}

func (s *server) do(t *testing.T, token string, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

// =============================================================================

func TestCreateAndDelete(t *testing.T) {
	s := newServer(t)

	cmp := s.db.SeedCompany(t, "Acme")
	usr := s.db.SeedUser(t, &cmp.ID)
	dsh := s.db.SeedDashboard(t, cmp.ID)

	body := grantapp.NewGrant{UserID: usr.ID.String(), DashboardID: dsh.ID.String()}

	w := s.do(t, s.adminToken, http.MethodPost, "/v1/grants", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	g := decode[grantapp.Grant](t, w)
	assert.Equal(t, usr.Email.Address, g.UserEmail)
	assert.Equal(t, dsh.Name.String(), g.DashboardName)

	w = s.do(t, s.adminToken, http.MethodPost, "/v1/grants", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, s.adminToken, http.MethodDelete, "/v1/grants/"+usr.ID.String()+"/"+dsh.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, s.adminToken, http.MethodDelete, "/v1/grants/"+usr.ID.String()+"/"+dsh.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTenantMismatch(t *testing.T) {
	s := newServer(t)

	acme := s.db.SeedCompany(t, "Acme")
	globex := s.db.SeedCompany(t, "Globex")
	usr := s.db.SeedUser(t, &acme.ID)
	dsh := s.db.SeedDashboard(t, globex.ID)

	w := s.do(t, s.adminToken, http.MethodPost, "/v1/grants", grantapp.NewGrant{UserID: usr.ID.String(), DashboardID: dsh.ID.String()})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	e := decode[errs.Error](t, w)
	assert.Equal(t, errs.TenantMismatch, e.Code)
}

func TestCreateValidation(t *testing.T) {
	s := newServer(t)

	w := s.do(t, s.adminToken, http.MethodPost, "/v1/grants", map[string]string{"userID": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserForbidden(t *testing.T) {
	s := newServer(t)

	usr := s.db.SeedUser(t, nil)
	tkn, err := s.auth.GenerateToken(usr)
	require.NoError(t, err)

	w := s.do(t, tkn, http.MethodGet, "/v1/grants", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, "", http.MethodGet, "/v1/grants", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyDashboards(t *testing.T) {
	s := newServer(t)

	cmp := s.db.SeedCompany(t, "Acme")
	usr := s.db.SeedUser(t, &cmp.ID)
	d1 := s.db.SeedDashboard(t, cmp.ID)
	s.db.SeedDashboard(t, cmp.ID)

	_, err := s.db.BusDomain.Grant.Create(context.Background(), usr.ID, d1.ID)
	require.NoError(t, err)

	tkn, err := s.auth.GenerateToken(usr)
	require.NoError(t, err)

	w := s.do(t, tkn, http.MethodGet, "/v1/me/dashboards", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[query.Result[grantapp.Dashboard]](t, w)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, d1.ID.String(), res.Items[0].ID)
}

func TestBulkUser(t *testing.T) {
	s := newServer(t)

	cmp := s.db.SeedCompany(t, "Acme")
	usr := s.db.SeedUser(t, &cmp.ID)
	d1 := s.db.SeedDashboard(t, cmp.ID)
	d2 := s.db.SeedDashboard(t, cmp.ID)
	missing := uuid.New()

	_, err := s.db.BusDomain.Grant.Create(context.Background(), usr.ID, d1.ID)
	require.NoError(t, err)

	body := grantapp.BulkUser{
		UserID:       usr.ID.String(),
		DashboardIDs: []string{d1.ID.String(), d2.ID.String(), missing.String()},
	}

	w := s.do(t, s.adminToken, http.MethodPost, "/v1/grants/bulk/user", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rpt := decode[grantapp.Report](t, w)
	assert.Equal(t, 1, rpt.Created)
	assert.Equal(t, 1, rpt.Skipped)
	assert.Equal(t, 1, rpt.Errored)

	require.Len(t, rpt.Items, 3)
	assert.Equal(t, "skipped", rpt.Items[0].Outcome)
	assert.Equal(t, "created", rpt.Items[1].Outcome)
	assert.Equal(t, "errored", rpt.Items[2].Outcome)
	assert.Equal(t, missing.String(), rpt.Items[2].ID)
	assert.Equal(t, errs.NotFound.String(), rpt.Items[2].Code)
}

func TestCompanyBulkDashboardAborts(t *testing.T) {
	s := newServer(t)

	acme := s.db.SeedCompany(t, "Acme")
	globex := s.db.SeedCompany(t, "Globex")
	u1 := s.db.SeedUser(t, &acme.ID)
	foreign := s.db.SeedUser(t, &globex.ID)
	dsh := s.db.SeedDashboard(t, acme.ID)

	body := grantapp.BulkDashboard{
		DashboardID: dsh.ID.String(),
		UserIDs:     []string{u1.ID.String(), foreign.ID.String()},
	}

	w := s.do(t, s.adminToken, http.MethodPost, "/v1/companies/"+acme.ID.String()+"/grants/bulk/dashboard", body)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, errs.TenantMismatch, decode[errs.Error](t, w).Code)
	assert.Empty(t, s.db.DB.GrantSet())

	w = s.do(t, s.adminToken, http.MethodPost, "/v1/companies/"+acme.ID.String()+"/grants/bulk/dashboard", grantapp.BulkDashboard{DashboardID: dsh.ID.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err := s.db.BusDomain.Tenant.DeactivateCompany(context.Background(), acme)
	require.NoError(t, err)

	body.UserIDs = []string{u1.ID.String()}
	w = s.do(t, s.adminToken, http.MethodPost, "/v1/companies/"+acme.ID.String()+"/grants/bulk/dashboard", body)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, errs.TenantInactive, decode[errs.Error](t, w).Code)
	assert.Empty(t, s.db.DB.GrantSet())
}
