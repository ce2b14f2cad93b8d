package domain

import (
	"context"
)

// interface for prospect storage
type ProspectRepository interface {
	Store(ctx context.Context, prospects []Prospect) error
	List(ctx context.Context, filter FilterOptions) ([]Prospect, error)
	Get(ctx context.Context, id string) (*Prospect, error)
	UpdateStatus(ctx context.Context, id string, status ProspectStatus) error
}

// interface for campaign storage
type CampaignRepository interface {
	Store(ctx context.Context, campaigns []Campaign) error
	List(ctx context.Context) ([]Campaign, error)
}

// interface for organization settings storage
type SettingsRepository interface {
	GetOrg(ctx context.Context) (OrgSettings, error)
	SaveOrg(ctx context.Context, settings OrgSettings) error
}

// interface for the dashboard's REST backend
type DashboardAPI interface {
	GetProspects(ctx context.Context, filters FilterOptions) ([]Prospect, error)
	GetCampaigns(ctx context.Context) ([]Campaign, error)
	UpdateProspectStatus(ctx context.Context, id string, status ProspectStatus) error
	GetOrgSettings(ctx context.Context) (OrgSettings, error)
	SaveOrgSettings(ctx context.Context, settings OrgSettings) (OrgSettings, error)
}
