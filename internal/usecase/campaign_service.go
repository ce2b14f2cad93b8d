package usecase

import (
	"context"
	"fmt"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
)

type CampaignService struct {
	repo   domain.CampaignRepository
	logger *logger.Logger
}

func NewCampaignService(repo domain.CampaignRepository, logger *logger.Logger) *CampaignService {
	return &CampaignService{repo: repo, logger: logger}
}

func (s *CampaignService) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list campaigns")
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}
