package delivery

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/internal/usecase"
	"prospectdash/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// handles HTTP requests
type HTTPHandlers struct {
	prospectService  *usecase.ProspectService
	campaignService  *usecase.CampaignService
	settingsService  *usecase.SettingsService
	dashboardService *usecase.DashboardService
	checks           map[string]HealthCheck
	logger           *logger.Logger
}

// creates new HTTP handlers
func NewHTTPHandlers(
	prospectService *usecase.ProspectService,
	campaignService *usecase.CampaignService,
	settingsService *usecase.SettingsService,
	dashboardService *usecase.DashboardService,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		prospectService:  prospectService,
		campaignService:  campaignService,
		settingsService:  settingsService,
		dashboardService: dashboardService,
		checks:           make(map[string]HealthCheck),
		logger:           logger,
	}
}

// AddHealthCheck registers a dependency probe reported by /health.
func (h *HTTPHandlers) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// ListProspects serves GET /api/prospects
func (h *HTTPHandlers) ListProspects(c *gin.Context) {
	ctx := c.Request.Context()

	filters, err := usecase.ParseProspectQuery(c.Request.URL.Query())
	if err != nil {
		h.respondError(c, err)
		return
	}

	prospects, err := h.prospectService.List(ctx, filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prospects)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProspectStatus serves PATCH /api/prospects/:id/status
func (h *HTTPHandlers) UpdateProspectStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	status, err := domain.ParseProspectStatus(req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.prospectService.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCampaigns serves GET /api/campaigns
func (h *HTTPHandlers) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetOrgSettings serves GET /api/settings/org
func (h *HTTPHandlers) GetOrgSettings(c *gin.Context) {
	settings, err := h.settingsService.GetOrg(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SaveOrgSettings serves POST /api/settings/org
func (h *HTTPHandlers) SaveOrgSettings(c *gin.Context) {
	var in domain.OrgSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		h.writeError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	saved, err := h.settingsService.SaveOrg(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetDashboard serves GET /api/dashboard: every view for one filter state
func (h *HTTPHandlers) GetDashboard(c *gin.Context) {
	filters, err := usecase.ParseProspectQuery(c.Request.URL.Query())
	if err != nil {
		h.respondError(c, err)
		return
	}

	var sortState domain.SortState
	if key := c.Query("sort"); key != "" {
		if sortState.Key, err = domain.ParseSortKey(key); err != nil {
			h.writeError(c, http.StatusBadRequest, "Invalid sort key", err.Error())
			return
		}
		if sortState.Direction, err = domain.ParseSortDirection(c.Query("dir")); err != nil {
			h.writeError(c, http.StatusBadRequest, "Invalid sort direction", err.Error())
			return
		}
	}

	snapshot, err := h.dashboardService.Snapshot(c.Request.Context(), filters, sortState)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetAPIInfo returns API information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	filterParams := gin.H{
		usecase.ParamSearch:       "Optional: matches name, company, title or email (case-insensitive)",
		usecase.ParamIndustry:     "Optional: comma separated industries",
		usecase.ParamStatus:       "Optional: comma separated statuses (new, contacted, responded, qualified, converted, rejected)",
		usecase.ParamCompanySize:  "Optional: comma separated company sizes",
		usecase.ParamLocation:     "Optional: comma separated locations",
		usecase.ParamTags:         "Optional: comma separated tags, any may match",
		usecase.ParamLeadScoreMin: "Optional: lower lead score bound (0-100)",
		usecase.ParamLeadScoreMax: "Optional: upper lead score bound (0-100)",
	}

	c.JSON(http.StatusOK, gin.H{
		"service":     "prospectdash",
		"version":     "1.0.0",
		"description": "Prospect and campaign data for the sales prospecting dashboard",
		"request_id":  c.GetString("request_id"),
		"endpoints": gin.H{
			"prospects": gin.H{
				"path":       "/api/prospects",
				"methods":    []string{"GET"},
				"parameters": filterParams,
				"example":    "/api/prospects?industry=Technology,Finance&leadScoreMin=50&leadScoreMax=100",
			},
			"prospect_status": gin.H{
				"path":    "/api/prospects/:id/status",
				"methods": []string{"PATCH"},
				"body":    gin.H{"status": "one of the prospect statuses"},
			},
			"campaigns": gin.H{
				"path":    "/api/campaigns",
				"methods": []string{"GET"},
			},
			"settings": gin.H{
				"path":    "/api/settings/org",
				"methods": []string{"GET", "POST"},
				"body": gin.H{
					"from_name":    "Required",
					"from_email":   "Required: valid email address",
					"company_name": "Required",
					"website":      "Optional",
					"brand_voice":  "Optional",
				},
			},
			"dashboard": gin.H{
				"path":    "/api/dashboard",
				"methods": []string{"GET"},
				"parameters": gin.H{
					"filters": "Same as /api/prospects",
					"sort":    "Optional: name, company, title, email, location, industry, companySize, status, leadScore, lastActivity, createdAt, updatedAt",
					"dir":     "Optional: asc or desc (default asc)",
				},
			},
		},
	})
}

// HealthCheck returns the health status of the service and its dependencies
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	code := http.StatusOK
	deps := gin.H{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.WithContext(ctx).WithError(err).WithField("dependency", name).Warn("Health check failed")
			deps[name] = err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"service":      "prospectdash",
		"version":      "1.0.0",
		"dependencies": deps,
		"request_id":   c.GetString("request_id"),
	})
}

// respondError maps domain errors to status codes.
func (h *HTTPHandlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProspectNotFound):
		h.writeError(c, http.StatusNotFound, "Prospect not found", err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		h.writeError(c, http.StatusBadRequest, "Invalid status", err.Error())
	case errors.Is(err, domain.ErrInvalidScoreRange):
		h.writeError(c, http.StatusBadRequest, "Invalid lead score range", err.Error())
	case errors.Is(err, domain.ErrInvalidSettings):
		h.writeError(c, http.StatusBadRequest, "Invalid settings", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.writeError(c, http.StatusRequestTimeout, "Request timeout", err.Error())
	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
		c.Error(err)
		h.writeError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func (h *HTTPHandlers) writeError(c *gin.Context, code int, title, message string) {
	c.JSON(code, gin.H{
		"error":      title,
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}
