package domain

import "time"

// derived summary over the current prospect set
type DashboardMetrics struct {
	Total          int     `json:"total"`
	Contacted      int     `json:"contacted"`
	Responded      int     `json:"responded"`
	Converted      int     `json:"converted"`
	ResponseRate   float64 `json:"responseRate"`
	ConversionRate float64 `json:"conversionRate"`
}

// one date on the campaign performance chart
type ChartPoint struct {
	Date      string `json:"date"`
	Sent      int    `json:"sent"`
	Opens     int    `json:"opens"`
	Clicks    int    `json:"clicks"`
	Responses int    `json:"responses"`
}

// a timeseries entry whose date could not be normalized
type RejectedEntry struct {
	CampaignID string `json:"campaignId"`
	Index      int    `json:"index"`
	RawDate    string `json:"rawDate"`
	Reason     string `json:"reason"`
}

type ChartData struct {
	Points   []ChartPoint    `json:"points"`
	Rejected []RejectedEntry `json:"rejected,omitempty"`
}

// one kanban column
type StageBucket struct {
	Stage     ProspectStatus `json:"stage"`
	Label     string         `json:"label"`
	Prospects []Prospect     `json:"prospects"`
}

type Pipeline struct {
	Stages []StageBucket `json:"stages"`
	// prospects whose status matched no stage
	Unassigned int `json:"unassigned"`
}

// Bucket returns the column for stage, or nil.
func (p Pipeline) Bucket(stage ProspectStatus) *StageBucket {
	for i := range p.Stages {
		if p.Stages[i].Stage == stage {
			return &p.Stages[i]
		}
	}
	return nil
}

// everything the dashboard renders for one filter state
type DashboardSnapshot struct {
	Filters     FilterOptions    `json:"filters"`
	Metrics     DashboardMetrics `json:"metrics"`
	Chart       ChartData        `json:"chart"`
	Pipeline    Pipeline         `json:"pipeline"`
	Prospects   []Prospect       `json:"prospects"`
	Sort        SortState        `json:"sort"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
