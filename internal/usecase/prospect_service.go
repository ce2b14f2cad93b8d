package usecase

import (
	"context"
	"errors"
	"fmt"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"
)

// ProspectService handles prospect queries and status changes
type ProspectService struct {
	repo    domain.ProspectRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewProspectService(repo domain.ProspectRepository, logger *logger.Logger, metrics *metrics.Metrics) *ProspectService {
	return &ProspectService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns the prospects matching filters.
func (s *ProspectService) List(ctx context.Context, filters domain.FilterOptions) ([]domain.Prospect, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	prospects, err := s.repo.List(ctx, filters)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list prospects")
		return nil, fmt.Errorf("failed to list prospects: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"count":  len(prospects),
		"search": filters.Search,
	}).Debug("Listed prospects")

	return prospects, nil
}

// UpdateStatus moves prospect id to status. Unknown statuses fail with
// ErrInvalidStatus and unknown ids with ErrProspectNotFound.
func (s *ProspectService) UpdateStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"prospect_id": id,
		"status":      status,
	})

	if !status.Valid() {
		s.metrics.RecordStatusUpdate(string(status), "invalid")
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrProspectNotFound) {
			s.metrics.RecordStatusUpdate(string(status), "not_found")
			log.Warn("Status update for unknown prospect")
			return err
		}
		s.metrics.RecordStatusUpdate(string(status), "error")
		log.WithError(err).Error("Failed to update prospect status")
		return fmt.Errorf("failed to update prospect status: %w", err)
	}

	s.metrics.RecordStatusUpdate(string(status), "success")
	log.Info("Updated prospect status")
	return nil
}
