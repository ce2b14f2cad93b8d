package infrastructure

import (
	"context"
	"sync"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
)

// implements domain.ProspectRepository in memory
type ProspectRepository struct {
	data   map[string]domain.Prospect
	order  []string
	mutex  sync.RWMutex
	logger *logger.Logger
	now    func() time.Time
}

// creates a new in-memory prospect repository
func NewProspectRepository(logger *logger.Logger) *ProspectRepository {
	return &ProspectRepository{
		data:   make(map[string]domain.Prospect),
		logger: logger,
		now:    time.Now,
	}
}

// Store inserts or replaces prospects by id. Insertion order is the list order.
func (r *ProspectRepository) Store(ctx context.Context, prospects []domain.Prospect) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, p := range prospects {
		if _, exists := r.data[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		p.Tags = append([]string(nil), p.Tags...)
		r.data[p.ID] = p
	}

	r.logger.WithContext(ctx).WithField("count", len(prospects)).Info("Stored prospects in memory")
	return nil
}

func (r *ProspectRepository) List(ctx context.Context, filter domain.FilterOptions) ([]domain.Prospect, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := []domain.Prospect{}
	for _, id := range r.order {
		p := r.data[id]
		if filter.Matches(p) {
			p.Tags = append([]string(nil), p.Tags...)
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *ProspectRepository) Get(ctx context.Context, id string) (*domain.Prospect, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.data[id]
	if !exists {
		return nil, domain.ErrProspectNotFound
	}
	p.Tags = append([]string(nil), p.Tags...)
	return &p, nil
}

func (r *ProspectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, exists := r.data[id]
	if !exists {
		return domain.ErrProspectNotFound
	}

	now := r.now().UTC()
	p.Status = status
	p.UpdatedAt = now
	p.LastActivity = now
	r.data[id] = p

	return nil
}
