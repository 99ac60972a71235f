package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hda-data/internal/cache"
	"hda-data/internal/domain"
	"hda-data/internal/repository"
	"hda-data/internal/service"
	"hda-data/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	adminIdentity = "sasha@hustledigitalagency.com"
	userIdentity  = "mikayla@hustledigitalagency.com"
)

type fakeBridge struct {
	connected bool
	err       error
	leads     []*domain.Lead
	bookings  []*domain.Booking
	clientIDs []string
}

func (f *fakeBridge) SyncLeadToHoneyBook(_ context.Context, lead *domain.Lead) (*service.HoneyBookContact, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.leads = append(f.leads, lead)
	return &service.HoneyBookContact{ID: "c_1", Name: lead.FirstName + " " + lead.LastName, Email: lead.Email}, nil
}

func (f *fakeBridge) SyncBookingToHoneyBook(_ context.Context, booking *domain.Booking, clientID string) (*service.HoneyBookProject, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bookings = append(f.bookings, booking)
	f.clientIDs = append(f.clientIDs, clientID)
	return &service.HoneyBookProject{ID: "p_1", ClientID: clientID, Status: "active"}, nil
}

func (f *fakeBridge) ListContacts(context.Context, int) ([]service.HoneyBookContact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.HoneyBookContact{{ID: "c_1", Name: "Ada"}}, nil
}

func (f *fakeBridge) ListProjects(context.Context, int) ([]service.HoneyBookProject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.HoneyBookProject{}, nil
}

func (f *fakeBridge) TestConnection(context.Context) bool { return f.connected }

type testEnv struct {
	server *httptest.Server
	bridge *fakeBridge
	cache  *cache.Cache
}

func newTestEnv(t *testing.T) *testEnv {
	logger := zap.NewNop()
	auth, err := service.NewAuthService(service.AuthOptions{
		AllowedIdentities: []string{adminIdentity, userIdentity},
		AdminIdentity:     adminIdentity,
		SigningSecret:     []byte("router-test-secret"),
		TTL:               time.Hour,
	}, logger)
	require.NoError(t, err)

	c := cache.New(store.NewMemoryKV(0), logger)
	records := service.NewRecordService(repository.NewMemoryRecordStore(), c, logger)
	bridge := &fakeBridge{connected: true}

	router := NewRouter(auth, logger)
	router.RegisterAuthRoutes(NewAuthHandler(auth, logger))
	router.RegisterRecordRoutes(NewRecordsHandler(records, logger))
	router.RegisterCacheRoutes(NewCacheHandler(c, logger))
	router.RegisterHoneyBookRoutes(NewHoneyBookHandler(bridge, records, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, bridge: bridge, cache: c}
}

type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func (e *testEnv) login(t *testing.T, identity string) string {
	t.Helper()
	status, env := e.do(t, http.MethodPost, "/auth/api/v1/login", "", `{"identity":"`+identity+`","secret":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	var resp service.LoginResponse
	require.NoError(t, json.Unmarshal(env.Result, &resp))
	return resp.AccessToken
}

func TestLoginAndSession(t *testing.T) {
	env := newTestEnv(t)

	status, res := env.do(t, http.MethodPost, "/auth/api/v1/login", "", `{"email":"Sasha@HustleDigitalAgency.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, ResultSuccess, res.Code)
	var login service.LoginResponse
	require.NoError(t, json.Unmarshal(res.Result, &login))
	assert.Equal(t, service.RoleAdmin, login.Role)

	status, res = env.do(t, http.MethodGet, "/auth/api/v1/session", login.AccessToken, "")
	require.Equal(t, http.StatusOK, status)
	var session map[string]any
	require.NoError(t, json.Unmarshal(res.Result, &session))
	assert.Equal(t, adminIdentity, session["userId"])
	assert.Equal(t, "admin", session["role"])
}

func TestLoginRejectedUniformly(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"identity":"stranger@example.com","secret":"pw"}`,
		`{"identity":"` + userIdentity + `"}`,
		`{}`,
	} {
		status, res := env.do(t, http.MethodPost, "/auth/api/v1/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, status, body)
		assert.Equal(t, ResultError, res.Code)
		assert.Equal(t, "login rejected", res.Message)
	}

	status, _ := env.do(t, http.MethodGet, "/auth/api/v1/login", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestSessionRequired(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/auth/api/v1/session",
		"/data/api/v1/leads",
		"/local/api/v1/cache/hda_theme",
		"/integrations/api/v1/honeybook/status",
	} {
		status, res := env.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, ResultTokenExpired, res.Code, path)

		status, res = env.do(t, http.MethodGet, path, "garbage", "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, ResultTokenExpired, res.Code, path)
	}
}

func TestRecordsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminIdentity)

	status, res := env.do(t, http.MethodPost, "/data/api/v1/leads", token,
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","value":1200}`)
	require.Equal(t, http.StatusCreated, status, res.Message)
	var lead domain.Lead
	require.NoError(t, json.Unmarshal(res.Result, &lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, adminIdentity, lead.UserID)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)

	status, res = env.do(t, http.MethodPatch, "/data/api/v1/leads/"+lead.ID, token, `{"status":"qualified"}`)
	require.Equal(t, http.StatusOK, status, res.Message)
	var updated domain.Lead
	require.NoError(t, json.Unmarshal(res.Result, &updated))
	assert.Equal(t, domain.LeadStatusQualified, updated.Status)
	assert.Equal(t, 1200.0, updated.Value)

	status, res = env.do(t, http.MethodGet, "/data/api/v1/leads", token, "")
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Items []domain.Lead `json:"items"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(res.Result, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, lead.ID, list.Items[0].ID)

	cached := env.cache.ForOwner(adminIdentity).Leads(context.Background())
	require.Len(t, cached, 1, "list snapshots into the owner's cache")

	other := env.login(t, userIdentity)
	status, res = env.do(t, http.MethodGet, "/data/api/v1/leads", other, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res.Result, &list))
	assert.Zero(t, list.Total, "rows are scoped to the owner")

	status, _ = env.do(t, http.MethodPut, "/data/api/v1/leads/"+lead.ID, other, `{"status":"lost"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/data/api/v1/leads/"+lead.ID, token, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodDelete, "/data/api/v1/leads/"+lead.ID, token, "")
	assert.Equal(t, http.StatusOK, status, "deleting twice is not an error")
}

func TestRecordsValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, userIdentity)

	cases := []struct {
		method, path, body, field string
	}{
		{http.MethodPost, "/data/api/v1/campaigns", `{"name":"Spring","type":"billboard"}`, "type"},
		{http.MethodPost, "/data/api/v1/leads", `{"first_name":"Ada"}`, "email"},
		{http.MethodPost, "/data/api/v1/targets", `{"name":"MRR","values":[1,"two"]}`, "values"},
		{http.MethodPost, "/data/api/v1/contacts", `[]`, ""},
	}
	for _, tc := range cases {
		status, res := env.do(t, tc.method, tc.path, token, tc.body)
		assert.Equal(t, http.StatusBadRequest, status, tc.body)
		assert.Equal(t, ResultError, res.Code)
		if tc.field != "" {
			assert.Contains(t, res.Message, tc.field)
		}
	}

	status, _ := env.do(t, http.MethodGet, "/data/api/v1/invoices", token, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, "/data/api/v1/leads/some-id", token, "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, _ = env.do(t, http.MethodPatch, "/data/api/v1/leads/missing", token, `{"notes":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecordsExport(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminIdentity)

	status, res := env.do(t, http.MethodPost, "/data/api/v1/competitors", token,
		`{"name":"Rival","strengths":["brand","price"],"upsell_opportunities":[{"service":"SEO","priority":"high","value":1500}]}`)
	require.Equal(t, http.StatusCreated, status, res.Message)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/data/api/v1/competitors/export", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "competitors_")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Competitors")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Contains(t, rows[0], "Threat Level")

	header := map[string]int{}
	for i, h := range rows[0] {
		header[h] = i
	}
	assert.Equal(t, "Rival", rows[1][header["Name"]])
	assert.Equal(t, "medium", rows[1][header["Threat Level"]])
	assert.Equal(t, "brand; price", rows[1][header["Strengths"]])
	assert.Equal(t, "SEO (high): 1500", rows[1][header["Upsell Opportunities"]])
}

func TestCacheEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminIdentity)
	other := env.login(t, userIdentity)

	status, res := env.do(t, http.MethodGet, "/local/api/v1/cache/hda_theme", token, "")
	require.Equal(t, http.StatusOK, status)
	assertNull(t, res.Result)

	status, res = env.do(t, http.MethodPut, "/local/api/v1/cache/hda_theme", token, `{"mode":"dark"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"stored":true}`, string(res.Result))

	_, res = env.do(t, http.MethodGet, "/local/api/v1/cache/hda_theme", token, "")
	assert.JSONEq(t, `{"mode":"dark"}`, string(res.Result))

	_, res = env.do(t, http.MethodGet, "/local/api/v1/cache/hda_theme", other, "")
	assertNull(t, res.Result, "cache views are per owner")

	status, _ = env.do(t, http.MethodPut, "/local/api/v1/cache/hda_theme", token, `{broken`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/local/api/v1/cache:reset", token, "")
	require.Equal(t, http.StatusOK, status)
	_, res = env.do(t, http.MethodGet, "/local/api/v1/cache/hda_theme", token, "")
	assertNull(t, res.Result)

	env.do(t, http.MethodPut, "/local/api/v1/cache/leads", token, `[]`)
	status, _ = env.do(t, http.MethodDelete, "/local/api/v1/cache/leads", token, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, "/local/api/v1/cache:reset", token, "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestCacheEndpoints_ResetIsAnOrdinaryKey(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminIdentity)

	status, res := env.do(t, http.MethodPut, "/local/api/v1/cache/reset", token, `{"step":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"stored":true}`, string(res.Result))

	status, res = env.do(t, http.MethodGet, "/local/api/v1/cache/reset", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"step":2}`, string(res.Result))

	status, _ = env.do(t, http.MethodDelete, "/local/api/v1/cache/reset", token, "")
	assert.Equal(t, http.StatusOK, status)
	_, res = env.do(t, http.MethodGet, "/local/api/v1/cache/reset", token, "")
	assertNull(t, res.Result)
}

func TestHoneyBookEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminIdentity)

	_, res := env.do(t, http.MethodGet, "/integrations/api/v1/honeybook/status", token, "")
	assert.JSONEq(t, `{"connected":true}`, string(res.Result))

	status, res := env.do(t, http.MethodGet, "/integrations/api/v1/honeybook/contacts?limit=5", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(res.Result), `"c_1"`)

	_, res = env.do(t, http.MethodPost, "/data/api/v1/leads", token, `{"first_name":"Ada","email":"ada@example.com"}`)
	var lead domain.Lead
	require.NoError(t, json.Unmarshal(res.Result, &lead))

	status, res = env.do(t, http.MethodPost, "/integrations/api/v1/honeybook/leads", token, `{"lead_id":"`+lead.ID+`"}`)
	require.Equal(t, http.StatusOK, status, res.Message)
	require.Len(t, env.bridge.leads, 1)
	assert.Equal(t, "ada@example.com", env.bridge.leads[0].Email)

	_, res = env.do(t, http.MethodPost, "/data/api/v1/bookings", token, `{"client_name":"Acme","service":"Audit","date":"2024-06-01"}`)
	var booking domain.Booking
	require.NoError(t, json.Unmarshal(res.Result, &booking))

	status, _ = env.do(t, http.MethodPost, "/integrations/api/v1/honeybook/bookings", token, `{"booking_id":"`+booking.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, status, "client_id is required")

	status, _ = env.do(t, http.MethodPost, "/integrations/api/v1/honeybook/bookings", token, `{"booking_id":"`+booking.ID+`","client_id":"c_1"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"c_1"}, env.bridge.clientIDs)

	status, _ = env.do(t, http.MethodPost, "/integrations/api/v1/honeybook/leads", token, `{"lead_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, res = env.do(t, http.MethodPost, "/integrations/api/v1/honeybook/leads", token, `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "body must be a JSON object", res.Message)

	env.bridge.err = &domain.IntegrationError{Op: "list contacts", StatusCode: 401, Message: "bad token"}
	status, res = env.do(t, http.MethodGet, "/integrations/api/v1/honeybook/contacts", token, "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, res.Message, "bad token")
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	status, res := env.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ResultSuccess, res.Code)
}

func assertNull(t *testing.T, raw json.RawMessage, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, len(raw) == 0 || string(raw) == "null", msgAndArgs...)
}
