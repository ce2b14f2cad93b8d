package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"
)

// DashboardService derives every dashboard view from the stored prospects and
// campaigns.
type DashboardService struct {
	prospectRepo domain.ProspectRepository
	campaignRepo domain.CampaignRepository
	logger       *logger.Logger
	metrics      *metrics.Metrics
	stages       []domain.ProspectStatus
	now          func() time.Time
}

func NewDashboardService(
	prospectRepo domain.ProspectRepository,
	campaignRepo domain.CampaignRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *DashboardService {
	return &DashboardService{
		prospectRepo: prospectRepo,
		campaignRepo: campaignRepo,
		logger:       logger,
		metrics:      metrics,
		stages:       domain.AllStatuses(),
		now:          time.Now,
	}
}

// Snapshot loads prospects and campaigns concurrently and derives metrics,
// chart, pipeline and the sorted table for filters.
func (s *DashboardService) Snapshot(ctx context.Context, filters domain.FilterOptions, sortState domain.SortState) (*domain.DashboardSnapshot, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.WithContext(ctx)
	start := time.Now()

	var prospects []domain.Prospect
	var campaigns []domain.Campaign
	var prospectErr, campaignErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		prospects, prospectErr = s.prospectRepo.List(ctx, filters)
	}()

	go func() {
		defer wg.Done()
		campaigns, campaignErr = s.campaignRepo.List(ctx)
	}()

	wg.Wait()

	if prospectErr != nil {
		log.WithError(prospectErr).Error("Failed to load prospects for dashboard")
		return nil, fmt.Errorf("failed to load prospects: %w", prospectErr)
	}
	if campaignErr != nil {
		log.WithError(campaignErr).Error("Failed to load campaigns for dashboard")
		return nil, fmt.Errorf("failed to load campaigns: %w", campaignErr)
	}

	now := s.now()
	snapshot := BuildSnapshot(filters, prospects, BuildChartData(campaigns, now), sortState, s.stages)
	snapshot.GeneratedAt = now.UTC()

	s.metrics.RecordAggregation("metrics")
	s.metrics.RecordAggregation("chart")
	s.metrics.RecordAggregation("pipeline")
	s.metrics.RecordAggregation("table")
	reportRejected(ctx, s.logger, s.metrics, snapshot.Chart.Rejected)
	if snapshot.Pipeline.Unassigned > 0 {
		s.metrics.RecordUnassigned(snapshot.Pipeline.Unassigned)
		log.WithField("unassigned", snapshot.Pipeline.Unassigned).Warn("Prospects with unknown status left out of the pipeline")
	}

	log.WithFields(map[string]any{
		"prospects": len(prospects),
		"campaigns": len(campaigns),
		"points":    len(snapshot.Chart.Points),
		"duration":  time.Since(start),
	}).Info("Built dashboard snapshot")

	return snapshot, nil
}

// BuildSnapshot derives all views from already loaded data.
func BuildSnapshot(filters domain.FilterOptions, prospects []domain.Prospect, chart domain.ChartData, sortState domain.SortState, stages []domain.ProspectStatus) *domain.DashboardSnapshot {
	if prospects == nil {
		prospects = []domain.Prospect{}
	}
	return &domain.DashboardSnapshot{
		Filters:   filters,
		Metrics:   ComputeMetrics(prospects),
		Chart:     chart,
		Pipeline:  GroupPipeline(prospects, stages),
		Prospects: SortProspects(prospects, sortState),
		Sort:      sortState,
	}
}
