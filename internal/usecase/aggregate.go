package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"prospectdash/internal/domain"
)

const dateKeyLayout = "2006-01-02"

// ComputeMetrics derives the dashboard summary from a prospect set.
func ComputeMetrics(prospects []domain.Prospect) domain.DashboardMetrics {
	var contacted, responded, converted int

	for _, p := range prospects {
		if p.Status.IsContacted() {
			contacted++
		}
		if p.Status.HasResponded() {
			responded++
		}
		if p.Status == domain.StatusConverted {
			converted++
		}
	}

	metrics := domain.DashboardMetrics{
		Total:     len(prospects),
		Contacted: contacted,
		Responded: responded,
		Converted: converted,
	}

	// division by zero protection
	if contacted > 0 {
		metrics.ResponseRate = float64(responded) / float64(contacted) * 100
		metrics.ConversionRate = float64(converted) / float64(contacted) * 100
	}

	return metrics
}

// BuildChartData merges campaign counters into date-ordered chart points.
//
// When any campaign carries a per-day timeseries, only timeseries entries are
// summed (campaigns without one contribute nothing). Otherwise the campaign totals
// are summed into a single point dated now (UTC), which for no campaigns at all
// is one zero point. Entries whose date cannot be normalized are left out and
// reported in Rejected.
func BuildChartData(campaigns []domain.Campaign, now time.Time) domain.ChartData {
	hasSeries := false
	for _, c := range campaigns {
		if c.HasTimeseries() {
			hasSeries = true
			break
		}
	}

	if !hasSeries {
		total := domain.ChartPoint{Date: now.UTC().Format(dateKeyLayout)}
		for _, c := range campaigns {
			total.Sent += c.Sent
			total.Opens += c.Opens
			total.Clicks += c.Clicks
			total.Responses += c.Responses
		}
		return domain.ChartData{Points: []domain.ChartPoint{total}}
	}

	byDate := make(map[string]*domain.ChartPoint)
	var rejected []domain.RejectedEntry

	for _, c := range campaigns {
		for i, entry := range c.Timeseries {
			key, err := NormalizeDate(entry.Date)
			if err != nil {
				rejected = append(rejected, domain.RejectedEntry{
					CampaignID: c.ID,
					Index:      i,
					RawDate:    entry.Date.Raw,
					Reason:     err.Error(),
				})
				continue
			}

			point, ok := byDate[key]
			if !ok {
				point = &domain.ChartPoint{Date: key}
				byDate[key] = point
			}
			point.Sent += entry.Sent
			point.Opens += entry.Opens
			point.Clicks += entry.Clicks
			point.Responses += entry.Responses
		}
	}

	points := make([]domain.ChartPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	// keys are zero padded YYYY-MM-DD so lexical order is chronological
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return domain.ChartData{Points: points, Rejected: rejected}
}

var errEmptyDate = errors.New("empty date")

// NormalizeDate turns a timeseries date into its YYYY-MM-DD key.
func NormalizeDate(d domain.DateValue) (string, error) {
	if d.Millis != nil {
		return time.UnixMilli(*d.Millis).UTC().Format(dateKeyLayout), nil
	}

	raw := strings.TrimSpace(d.Raw)
	if raw == "" {
		return "", errEmptyDate
	}

	// Parse date - try multiple formats
	dateFormats := []string{
		dateKeyLayout,         // YYYY-MM-DD
		time.RFC3339Nano,      // 2006-01-02T15:04:05.999999999Z07:00
		"2006-01-02T15:04:05", // no zone, treated as UTC
		"2006-01-02 15:04:05", // YYYY-MM-DD HH:MM:SS
		"2006/01/02",          // YYYY/MM/DD
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC().Format(dateKeyLayout), nil
		}
	}

	return "", fmt.Errorf("unrecognized date %q", d.Raw)
}
