package usecase

import (
	"context"
	"sync"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"
)

// FetchTicket identifies one fetch issued for a filter change.
type FetchTicket struct {
	Seq     uint64
	Filters domain.FilterOptions
}

// FilterState owns the active filter criteria and the fetch sequences. A result
// is applied only when it belongs to the most recently issued ticket and the
// owner is still active. Campaign fetches carry their own sequence since they
// do not depend on the filters.
type FilterState struct {
	mutex       sync.Mutex
	filters     domain.FilterOptions
	seq         uint64
	campaignSeq uint64
	closed      bool
}

func NewFilterState() *FilterState {
	return &FilterState{filters: domain.DefaultFilters()}
}

// Current returns a copy of the active filters.
func (s *FilterState) Current() domain.FilterOptions {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.filters.Clone()
}

// Update merges patch into the active filters and issues a new ticket. An
// invalid result leaves the state untouched.
func (s *FilterState) Update(patch domain.FilterPatch) (FetchTicket, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	next := s.filters.Merge(patch)
	if err := next.Validate(); err != nil {
		return FetchTicket{}, err
	}
	s.filters = next
	return s.issueLocked(), nil
}

// Clear resets the filters to DefaultFilters and issues a new ticket.
func (s *FilterState) Clear() FetchTicket {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.filters = domain.DefaultFilters()
	return s.issueLocked()
}

// Refresh issues a ticket for the current filters without changing them.
func (s *FilterState) Refresh() FetchTicket {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.issueLocked()
}

func (s *FilterState) issueLocked() FetchTicket {
	s.seq++
	return FetchTicket{Seq: s.seq, Filters: s.filters.Clone()}
}

// Accept reports whether a result for seq may be applied.
func (s *FilterState) Accept(seq uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return !s.closed && seq == s.seq
}

// RefreshCampaigns issues the sequence number for a new campaign fetch.
func (s *FilterState) RefreshCampaigns() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.campaignSeq++
	return s.campaignSeq
}

// AcceptCampaigns reports whether a campaign result for seq may be applied.
func (s *FilterState) AcceptCampaigns(seq uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return !s.closed && seq == s.campaignSeq
}

// Close marks the owner as gone; nothing is accepted afterwards.
func (s *FilterState) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
}

// ProspectResult is the outcome of one prospect fetch.
type ProspectResult struct {
	Seq       uint64
	Prospects []domain.Prospect
	Err       error
}

// ProspectLoader fetches prospects for filter tickets.
type ProspectLoader struct {
	api     domain.DashboardAPI
	state   *FilterState
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewProspectLoader(api domain.DashboardAPI, state *FilterState, logger *logger.Logger, metrics *metrics.Metrics) *ProspectLoader {
	return &ProspectLoader{
		api:     api,
		state:   state,
		logger:  logger,
		metrics: metrics,
	}
}

// Load runs the fetch for ticket. It never applies anything itself; callers
// pass the result to Apply.
func (l *ProspectLoader) Load(ctx context.Context, ticket FetchTicket) ProspectResult {
	start := time.Now()
	prospects, err := l.api.GetProspects(ctx, ticket.Filters)
	if err != nil {
		l.logger.WithContext(ctx).WithError(err).WithField("seq", ticket.Seq).Error("Failed to fetch prospects")
		return ProspectResult{Seq: ticket.Seq, Err: err}
	}

	l.logger.WithContext(ctx).WithFields(map[string]any{
		"seq":      ticket.Seq,
		"count":    len(prospects),
		"duration": time.Since(start),
	}).Debug("Fetched prospects")

	return ProspectResult{Seq: ticket.Seq, Prospects: prospects}
}

// Apply reports whether result is current. Stale results are counted and
// must be dropped by the caller.
func (l *ProspectLoader) Apply(result ProspectResult) bool {
	if l.state.Accept(result.Seq) {
		return true
	}
	l.metrics.RecordStaleResult("prospects")
	l.logger.WithField("seq", result.Seq).Debug("Discarding stale prospect result")
	return false
}

// CampaignResult is the outcome of one campaign fetch.
type CampaignResult struct {
	Seq       uint64
	Campaigns []domain.Campaign
	Chart     domain.ChartData
	Err       error
}

// CampaignLoader fetches campaigns and derives the chart from them.
type CampaignLoader struct {
	api     domain.DashboardAPI
	state   *FilterState
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCampaignLoader(api domain.DashboardAPI, state *FilterState, logger *logger.Logger, metrics *metrics.Metrics) *CampaignLoader {
	return &CampaignLoader{
		api:     api,
		state:   state,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Load fetches campaigns for seq, a number from FilterState.RefreshCampaigns.
// Like ProspectLoader.Load it applies nothing; callers pass the result to Apply.
func (l *CampaignLoader) Load(ctx context.Context, seq uint64) CampaignResult {
	campaigns, err := l.api.GetCampaigns(ctx)
	if err != nil {
		l.logger.WithContext(ctx).WithError(err).WithField("seq", seq).Error("Failed to fetch campaigns")
		return CampaignResult{Seq: seq, Err: err}
	}

	chart := BuildChartData(campaigns, l.now())
	l.metrics.RecordAggregation("chart")
	reportRejected(ctx, l.logger, l.metrics, chart.Rejected)

	return CampaignResult{Seq: seq, Campaigns: campaigns, Chart: chart}
}

// Apply reports whether result is current. Stale results are counted and
// must be dropped by the caller.
func (l *CampaignLoader) Apply(result CampaignResult) bool {
	if l.state.AcceptCampaigns(result.Seq) {
		return true
	}
	l.metrics.RecordStaleResult("campaigns")
	l.logger.WithField("seq", result.Seq).Debug("Discarding stale campaign result")
	return false
}

func reportRejected(ctx context.Context, log *logger.Logger, m *metrics.Metrics, rejected []domain.RejectedEntry) {
	if len(rejected) == 0 {
		return
	}
	m.RecordChartRejected(len(rejected))
	for _, r := range rejected {
		log.WithContext(ctx).WithFields(map[string]any{
			"campaign_id": r.CampaignID,
			"index":       r.Index,
			"date":        r.RawDate,
			"reason":      r.Reason,
		}).Warn("Dropping timeseries entry with malformed date")
	}
}
