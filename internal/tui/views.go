package tui

import (
	"fmt"
	"strings"
	"time"

	"prospectdash/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const (
	noCampaignData  = "No campaign data available."
	noProspectsData = "No prospects match the current filters."
	maxCardsInStage = 8
)

// RenderMetrics draws the four summary cards.
func RenderMetrics(s Styles, m domain.DashboardMetrics) string {
	cards := []struct {
		title string
		value string
		icon  Icon
	}{
		{"Total Prospects", FormatNumber(m.Total), IconUsers},
		{"Contacted", FormatNumber(m.Contacted), IconMessage},
		{"Response Rate", FormatPercentage(m.ResponseRate, 1), IconChart},
		{"Conversion Rate", FormatPercentage(m.ConversionRate, 1), IconTrending},
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.Muted.Render(c.icon.Glyph()+" "+c.title),
			s.CardValue.Render(c.value),
		)
		rendered = append(rendered, s.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderChart draws one bar per date scaled to the largest sent count.
// campaigns is the number of campaigns the chart was built from; with none
// the empty state is shown instead of the zero point.
func RenderChart(s Styles, chart domain.ChartData, campaigns int, width int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(IconChart.Glyph() + " Campaign Performance"))
	b.WriteString("\n")

	if campaigns == 0 {
		b.WriteString(s.Muted.Render(noCampaignData))
		return b.String()
	}

	maxSent := 0
	for _, p := range chart.Points {
		maxSent = max(maxSent, p.Sent)
	}

	barWidth := max(width-60, 10)
	bar := lipgloss.NewStyle().Foreground(s.Palette.Chart[0])

	for _, p := range chart.Points {
		n := 0
		if maxSent > 0 {
			n = min(max(p.Sent*barWidth/maxSent, 0), barWidth)
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			s.Muted.Render(p.Date),
			bar.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)),
			s.Body.Render(fmt.Sprintf("sent %s  opens %s  clicks %s  responses %s",
				FormatNumber(p.Sent), FormatNumber(p.Opens), FormatNumber(p.Clicks), FormatNumber(p.Responses))),
		)
	}

	if len(chart.Rejected) > 0 {
		b.WriteString(s.Warn.Render(fmt.Sprintf("%s %d timeseries entries skipped (malformed date)",
			IconWarning.Glyph(), len(chart.Rejected))))
	}
	return strings.TrimRight(b.String(), "\n")
}

type tableColumn struct {
	key   domain.SortKey
	title string
	width int
	value func(p domain.Prospect, now time.Time) string
}

var tableColumns = []tableColumn{
	{domain.SortByName, "Name", 18, func(p domain.Prospect, _ time.Time) string { return p.Name }},
	{domain.SortByCompany, "Company", 16, func(p domain.Prospect, _ time.Time) string { return p.Company }},
	{domain.SortByTitle, "Title", 16, func(p domain.Prospect, _ time.Time) string { return p.Title }},
	{domain.SortByIndustry, "Industry", 13, func(p domain.Prospect, _ time.Time) string { return p.Industry }},
	{domain.SortByLeadScore, "Score", 9, func(p domain.Prospect, _ time.Time) string { return fmt.Sprint(p.LeadScore) }},
	{domain.SortByStatus, "Status", 12, func(p domain.Prospect, _ time.Time) string { return p.Status.Label() }},
	{domain.SortByLastActivity, "Last Activity", 16, func(p domain.Prospect, now time.Time) string {
		return FormatRelativeTime(p.LastActivity, now)
	}},
}

// RenderTable draws prospects as rows with the sort arrow on the active
// column. selected < 0 highlights nothing.
func RenderTable(s Styles, prospects []domain.Prospect, sortState domain.SortState, selected int, now time.Time) string {
	if len(prospects) == 0 {
		return s.Muted.Render(noProspectsData)
	}

	var b strings.Builder
	for _, col := range tableColumns {
		b.WriteString(s.Bold.Render(pad(col.title+sortState.Indicator(col.key), col.width)))
	}
	b.WriteString("\n")

	for i, p := range prospects {
		var row strings.Builder
		for _, col := range tableColumns {
			row.WriteString(pad(col.value(p, now), col.width))
		}
		if i == selected {
			b.WriteString(s.Selected.Render(row.String()))
		} else {
			b.WriteString(s.Body.Render(row.String()))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPipeline draws one column per stage.
func RenderPipeline(s Styles, pipeline domain.Pipeline) string {
	columns := make([]string, 0, len(pipeline.Stages))
	for _, bucket := range pipeline.Stages {
		lines := []string{
			s.Bold.Render(fmt.Sprintf("%s (%d)", bucket.Label, len(bucket.Prospects))),
		}
		for i, p := range bucket.Prospects {
			if i == maxCardsInStage {
				lines = append(lines, s.Muted.Render(fmt.Sprintf("+%d more", len(bucket.Prospects)-i)))
				break
			}
			lines = append(lines, s.Body.Render(truncate(p.Name, 20)), s.Muted.Render(truncate(p.Company, 20)))
		}
		columns = append(columns, s.Column.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if pipeline.Unassigned > 0 {
		out += "\n" + s.Warn.Render(fmt.Sprintf("%s %d prospects have a status outside the pipeline",
			IconWarning.Glyph(), pipeline.Unassigned))
	}
	return out
}

// RenderSettings lists the organization settings, or a hint when none are stored.
func RenderSettings(s Styles, settings domain.OrgSettings) string {
	if settings.IsZero() {
		return s.Muted.Render("Organization settings have not been configured.")
	}
	rows := [][2]string{
		{"From name", settings.FromName},
		{"From email", settings.FromEmail},
		{"Company", settings.CompanyName},
		{"Website", settings.Website},
		{"Brand voice", settings.BrandVoice},
	}
	var b strings.Builder
	for _, r := range rows {
		value := r[1]
		if value == "" {
			value = emptyDate
		}
		fmt.Fprintf(&b, "%s %s\n", s.Muted.Render(pad(r[0], 12)), s.Body.Render(value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError shows a fetch failure in place of the view it broke.
func RenderError(s Styles, message string) string {
	return s.Error.Render(IconWarning.Glyph() + " " + message)
}

func pad(s string, width int) string {
	s = truncate(s, width-1)
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
