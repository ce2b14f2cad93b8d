package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/internal/infrastructure"
	"prospectdash/internal/usecase"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	handlers  *HTTPHandlers
	prospects *infrastructure.ProspectRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Discard()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	ctx := context.Background()

	prospects := infrastructure.NewProspectRepository(log)
	campaigns := infrastructure.NewCampaignRepository(log)
	require.NoError(t, prospects.Store(ctx, []domain.Prospect{
		{ID: "p1", Name: "Jane Doe", Company: "Acme", Industry: "Technology", LeadScore: 80, Status: domain.StatusNew},
		{ID: "p2", Name: "John Smith", Company: "Globex", Industry: "Finance", LeadScore: 45, Status: domain.StatusContacted},
		{ID: "p3", Name: "Ann Lee", Company: "Initech", Industry: "Technology", LeadScore: 60, Status: domain.StatusConverted},
	}))
	require.NoError(t, campaigns.Store(ctx, []domain.Campaign{
		{ID: "c1", Name: "Launch", Sent: 100, Opens: 40, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}))

	handlers := NewHTTPHandlers(
		usecase.NewProspectService(prospects, log, m),
		usecase.NewCampaignService(campaigns, log),
		usecase.NewSettingsService(infrastructure.NewSettingsRepository(), log),
		usecase.NewDashboardService(prospects, campaigns, log, m),
		log,
	)
	router := NewHTTPRouter(handlers, log, m, RouterConfig{Gatherer: reg}).SetupRoutes()

	return &testServer{router: router, handlers: handlers, prospects: prospects}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListProspects(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/prospects?industry=Technology&leadScoreMin=70&leadScoreMax=100", "")
	require.Equal(t, http.StatusOK, w.Code)

	var prospects []domain.Prospect
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prospects))
	require.Len(t, prospects, 1)
	assert.Equal(t, "p1", prospects[0].ID)

	w = s.do(http.MethodGet, "/api/prospects?search=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListProspects_InvalidQuery(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/prospects?leadScoreMin=90&leadScoreMax=10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid lead score range", decodeError(t, w)["error"])

	w = s.do(http.MethodGet, "/api/prospects?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", decodeError(t, w)["error"])
}

func TestUpdateProspectStatus(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPatch, "/api/prospects/p1/status", `{"status":"qualified"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	p, err := s.prospects.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQualified, p.Status)

	w = s.do(http.MethodPatch, "/api/prospects/missing/status", `{"status":"qualified"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPatch, "/api/prospects/p1/status", `{"status":"won"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", decodeError(t, w)["error"])

	w = s.do(http.MethodPatch, "/api/prospects/p1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCampaigns(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/campaigns", "")
	require.Equal(t, http.StatusOK, w.Code)

	var campaigns []domain.Campaign
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &campaigns))
	require.Len(t, campaigns, 1)
	assert.Equal(t, 100, campaigns[0].Sent)
}

func TestOrgSettings(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/settings/org", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"from_name":"","from_email":"","company_name":""}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/settings/org", `{"from_name":" Ada ","from_email":"ada@example.com","company_name":"Engines"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"from_name":"Ada","from_email":"ada@example.com","company_name":"Engines"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/settings/org", `{"from_name":"Ada","from_email":"not-an-address","company_name":"Engines"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid settings", decodeError(t, w)["error"])

	w = s.do(http.MethodPost, "/api/settings/org", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDashboard(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/dashboard?sort=leadScore&dir=desc", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot domain.DashboardSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 3, snapshot.Metrics.Total)
	assert.Equal(t, 2, snapshot.Metrics.Contacted)
	assert.Equal(t, 1, snapshot.Metrics.Converted)
	require.Len(t, snapshot.Prospects, 3)
	assert.Equal(t, []string{"p1", "p3", "p2"}, []string{snapshot.Prospects[0].ID, snapshot.Prospects[1].ID, snapshot.Prospects[2].ID})
	assert.Len(t, snapshot.Pipeline.Stages, len(domain.AllStatuses()))
	require.Len(t, snapshot.Chart.Points, 1)
	assert.Equal(t, 100, snapshot.Chart.Points[0].Sent)

	w = s.do(http.MethodGet, "/api/dashboard?sort=shoeSize", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid sort key", decodeError(t, w)["error"])

	w = s.do(http.MethodGet, "/api/dashboard?sort=name&dir=sideways", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	s.handlers.AddHealthCheck("redis", func(ctx context.Context) error { return nil })

	w := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)

	s.handlers.AddHealthCheck("postgres", func(ctx context.Context) error { return errors.New("connection refused") })
	w = s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
}

func TestAPIInfoAndRequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"request_id":"req-123"`)
	assert.Contains(t, w.Body.String(), "/api/dashboard")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	s.do(http.MethodGet, "/api/campaigns", "")
	w := s.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
