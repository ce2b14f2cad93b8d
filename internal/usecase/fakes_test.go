package usecase

import (
	"context"
	"sync"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func testDeps() (*logger.Logger, *metrics.Metrics) {
	return logger.Discard(), metrics.NewWithRegistry(prometheus.NewRegistry())
}

func prospectsWithStatuses(statuses ...domain.ProspectStatus) []domain.Prospect {
	out := make([]domain.Prospect, len(statuses))
	for i, s := range statuses {
		out[i] = domain.Prospect{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Status: s}
	}
	return out
}

type fakeProspectRepo struct {
	mutex     sync.Mutex
	prospects []domain.Prospect
	err       error
	lastQuery domain.FilterOptions
}

func (r *fakeProspectRepo) Store(ctx context.Context, prospects []domain.Prospect) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.prospects = append(r.prospects, prospects...)
	return nil
}

func (r *fakeProspectRepo) List(ctx context.Context, filter domain.FilterOptions) ([]domain.Prospect, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.lastQuery = filter
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Prospect
	for _, p := range r.prospects {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProspectRepo) Get(ctx context.Context, id string) (*domain.Prospect, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for i := range r.prospects {
		if r.prospects[i].ID == id {
			p := r.prospects[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProspectNotFound
}

func (r *fakeProspectRepo) UpdateStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.prospects {
		if r.prospects[i].ID == id {
			r.prospects[i].Status = status
			return nil
		}
	}
	return domain.ErrProspectNotFound
}

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
	err       error
}

func (r *fakeCampaignRepo) Store(ctx context.Context, campaigns []domain.Campaign) error {
	r.campaigns = append(r.campaigns, campaigns...)
	return nil
}

func (r *fakeCampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	return r.campaigns, r.err
}

type fakeSettingsRepo struct {
	settings domain.OrgSettings
	saved    int
	err      error
}

func (r *fakeSettingsRepo) GetOrg(ctx context.Context) (domain.OrgSettings, error) {
	return r.settings, r.err
}

func (r *fakeSettingsRepo) SaveOrg(ctx context.Context, settings domain.OrgSettings) error {
	if r.err != nil {
		return r.err
	}
	r.settings = settings
	r.saved++
	return nil
}

// fakeAPI answers prospect fetches per search string so tests can tell
// results apart.
type fakeAPI struct {
	mutex       sync.Mutex
	bySearch    map[string][]domain.Prospect
	prospectErr error
	campaigns   []domain.Campaign
	campaignErr error
	calls       []domain.FilterOptions
}

func (a *fakeAPI) GetProspects(ctx context.Context, filters domain.FilterOptions) ([]domain.Prospect, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.calls = append(a.calls, filters)
	if a.prospectErr != nil {
		return nil, a.prospectErr
	}
	return a.bySearch[filters.Search], nil
}

func (a *fakeAPI) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return a.campaigns, a.campaignErr
}

func (a *fakeAPI) UpdateProspectStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	return nil
}

func (a *fakeAPI) GetOrgSettings(ctx context.Context) (domain.OrgSettings, error) {
	return domain.OrgSettings{}, nil
}

func (a *fakeAPI) SaveOrgSettings(ctx context.Context, settings domain.OrgSettings) (domain.OrgSettings, error) {
	return settings, nil
}
