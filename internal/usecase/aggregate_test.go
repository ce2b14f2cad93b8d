package usecase

import (
	"testing"
	"time"

	"prospectdash/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 22, 30, 0, 0, time.FixedZone("PST", -8*3600))

func TestComputeMetrics(t *testing.T) {
	t.Run("ten prospects", func(t *testing.T) {
		prospects := prospectsWithStatuses(
			domain.StatusNew, domain.StatusNew, domain.StatusNew, domain.StatusNew,
			domain.StatusContacted, domain.StatusContacted, domain.StatusRejected,
			domain.StatusResponded,
			domain.StatusConverted, domain.StatusConverted,
		)

		m := ComputeMetrics(prospects)

		assert.Equal(t, 10, m.Total)
		assert.Equal(t, 6, m.Contacted)
		assert.Equal(t, 3, m.Responded)
		assert.Equal(t, 2, m.Converted)
		assert.InDelta(t, 50.0, m.ResponseRate, 0.001)
		assert.InDelta(t, 33.33, m.ConversionRate, 0.01)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, domain.DashboardMetrics{}, ComputeMetrics(nil))
	})

	t.Run("nobody contacted", func(t *testing.T) {
		m := ComputeMetrics(prospectsWithStatuses(domain.StatusNew, domain.StatusNew))
		assert.Equal(t, 2, m.Total)
		assert.Zero(t, m.Contacted)
		assert.Zero(t, m.ResponseRate)
		assert.Zero(t, m.ConversionRate)
	})

	t.Run("qualified counts as responded", func(t *testing.T) {
		m := ComputeMetrics(prospectsWithStatuses(domain.StatusQualified))
		assert.Equal(t, 1, m.Responded)
		assert.Zero(t, m.Converted)
		assert.InDelta(t, 100.0, m.ResponseRate, 0.001)
	})

	t.Run("unknown status is contacted", func(t *testing.T) {
		m := ComputeMetrics(prospectsWithStatuses(domain.ProspectStatus("Proposal")))
		assert.Equal(t, 1, m.Contacted)
		assert.Zero(t, m.Responded)
	})
}

func TestBuildChartData_Totals(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "c1", Sent: 100, Opens: 40, Clicks: 10, Responses: 5},
		{ID: "c2", Sent: 50, Opens: 20, Clicks: 4, Responses: 1},
	}

	chart := BuildChartData(campaigns, fixedNow)

	require.Len(t, chart.Points, 1)
	assert.Equal(t, domain.ChartPoint{Date: "2024-03-16", Sent: 150, Opens: 60, Clicks: 14, Responses: 6}, chart.Points[0])
	assert.Empty(t, chart.Rejected)
}

func TestBuildChartData_NoCampaigns(t *testing.T) {
	for _, campaigns := range [][]domain.Campaign{nil, {}} {
		chart := BuildChartData(campaigns, fixedNow)
		require.Len(t, chart.Points, 1)
		assert.Equal(t, domain.ChartPoint{Date: "2024-03-16"}, chart.Points[0])
		assert.Empty(t, chart.Rejected)
	}
}

func TestBuildChartData_Timeseries(t *testing.T) {
	campaigns := []domain.Campaign{
		{
			ID: "c1",
			Timeseries: []domain.TimeseriesPoint{
				{Date: domain.DateString("2024-03-02"), Sent: 10, Opens: 5, Clicks: 2, Responses: 1},
				{Date: domain.DateString("2024-03-01"), Sent: 20, Opens: 8},
			},
		},
		{
			ID: "c2",
			Timeseries: []domain.TimeseriesPoint{
				{Date: domain.DateString("2024-03-02T23:30:00Z"), Sent: 1, Opens: 1, Clicks: 1, Responses: 1},
				{Date: domain.DateMillis(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC).UnixMilli()), Sent: 7},
			},
		},
		// totals of campaigns without a timeseries are ignored in this branch
		{ID: "c3", Sent: 1000},
	}

	chart := BuildChartData(campaigns, fixedNow)

	require.Len(t, chart.Points, 3)
	assert.Equal(t, domain.ChartPoint{Date: "2024-03-01", Sent: 20, Opens: 8}, chart.Points[0])
	assert.Equal(t, domain.ChartPoint{Date: "2024-03-02", Sent: 11, Opens: 6, Clicks: 3, Responses: 2}, chart.Points[1])
	assert.Equal(t, domain.ChartPoint{Date: "2024-03-03", Sent: 7}, chart.Points[2])

	for i := 1; i < len(chart.Points); i++ {
		assert.Less(t, chart.Points[i-1].Date, chart.Points[i].Date)
	}
}

func TestBuildChartData_RejectsMalformedDates(t *testing.T) {
	campaigns := []domain.Campaign{
		{
			ID: "c1",
			Timeseries: []domain.TimeseriesPoint{
				{Date: domain.DateString("2024-03-01"), Sent: 3},
				{Date: domain.DateString("not a date"), Sent: 99},
				{Date: domain.DateString(""), Sent: 99},
			},
		},
	}

	chart := BuildChartData(campaigns, fixedNow)

	require.Len(t, chart.Points, 1)
	assert.Equal(t, 3, chart.Points[0].Sent)
	require.Len(t, chart.Rejected, 2)
	assert.Equal(t, "c1", chart.Rejected[0].CampaignID)
	assert.Equal(t, 1, chart.Rejected[0].Index)
	assert.Equal(t, "not a date", chart.Rejected[0].RawDate)
	assert.Equal(t, 2, chart.Rejected[1].Index)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.DateValue
		want    string
		wantErr bool
	}{
		{"plain day", domain.DateString("2024-01-05"), "2024-01-05", false},
		{"rfc3339 with offset", domain.DateString("2024-01-05T22:00:00-05:00"), "2024-01-06", false},
		{"rfc3339 nano", domain.DateString("2024-01-05T10:00:00.123Z"), "2024-01-05", false},
		{"no zone", domain.DateString("2024-01-05T10:00:00"), "2024-01-05", false},
		{"space separated", domain.DateString("2024-01-05 10:00:00"), "2024-01-05", false},
		{"slashes", domain.DateString("2024/01/05"), "2024-01-05", false},
		{"padded", domain.DateString("  2024-01-05 "), "2024-01-05", false},
		{"millis", domain.DateMillis(time.Date(2024, 1, 5, 1, 0, 0, 0, time.UTC).UnixMilli()), "2024-01-05", false},
		{"empty", domain.DateString(""), "", true},
		{"garbage", domain.DateString("yesterday"), "", true},
		{"out of range", domain.DateString("2024-13-40"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
