package usecase

import (
	"context"
	"fmt"
	"strings"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
)

// SettingsService reads and writes the organization settings
type SettingsService struct {
	repo   domain.SettingsRepository
	logger *logger.Logger
}

func NewSettingsService(repo domain.SettingsRepository, logger *logger.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// GetOrg returns the stored settings. Nothing stored yet is not an error; the
// zero value comes back.
func (s *SettingsService) GetOrg(ctx context.Context) (domain.OrgSettings, error) {
	settings, err := s.repo.GetOrg(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to load organization settings")
		return domain.OrgSettings{}, fmt.Errorf("failed to load organization settings: %w", err)
	}
	return settings, nil
}

// SaveOrg trims, validates and stores settings, returning what was stored.
func (s *SettingsService) SaveOrg(ctx context.Context, settings domain.OrgSettings) (domain.OrgSettings, error) {
	settings = domain.OrgSettings{
		FromName:    strings.TrimSpace(settings.FromName),
		FromEmail:   strings.TrimSpace(settings.FromEmail),
		CompanyName: strings.TrimSpace(settings.CompanyName),
		Website:     strings.TrimSpace(settings.Website),
		BrandVoice:  strings.TrimSpace(settings.BrandVoice),
	}

	if err := settings.Validate(); err != nil {
		return domain.OrgSettings{}, err
	}

	if err := s.repo.SaveOrg(ctx, settings); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to save organization settings")
		return domain.OrgSettings{}, fmt.Errorf("failed to save organization settings: %w", err)
	}

	s.logger.WithContext(ctx).WithField("company_name", settings.CompanyName).Info("Saved organization settings")
	return settings, nil
}
