package usecase

import (
	"context"
	"sync"
)

// Views is one round of dashboard fetches. Each resource fails on its own: a
// prospect error leaves the chart usable and the other way round.
type Views struct {
	Prospects ProspectResult
	Campaigns CampaignResult
}

// LoadViews fetches prospects for ticket and the campaigns concurrently.
func LoadViews(ctx context.Context, prospects *ProspectLoader, campaigns *CampaignLoader, ticket FetchTicket) Views {
	var views Views
	campaignSeq := campaigns.state.RefreshCampaigns()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		views.Prospects = prospects.Load(ctx, ticket)
	}()

	go func() {
		defer wg.Done()
		views.Campaigns = campaigns.Load(ctx, campaignSeq)
	}()

	wg.Wait()
	return views
}
