package infrastructure

import (
	"context"
	"sync"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
)

// implements domain.CampaignRepository in memory
type CampaignRepository struct {
	data   []domain.Campaign
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewCampaignRepository(logger *logger.Logger) *CampaignRepository {
	return &CampaignRepository{logger: logger}
}

// Store replaces campaigns that share an id and appends the rest.
func (r *CampaignRepository) Store(ctx context.Context, campaigns []domain.Campaign) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, c := range campaigns {
		c.Timeseries = append([]domain.TimeseriesPoint(nil), c.Timeseries...)
		replaced := false
		for i := range r.data {
			if r.data[i].ID == c.ID {
				r.data[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			r.data = append(r.data, c)
		}
	}

	r.logger.WithContext(ctx).WithField("count", len(campaigns)).Info("Stored campaigns in memory")
	return nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]domain.Campaign, len(r.data))
	for i, c := range r.data {
		c.Timeseries = append([]domain.TimeseriesPoint(nil), c.Timeseries...)
		result[i] = c
	}
	return result, nil
}
