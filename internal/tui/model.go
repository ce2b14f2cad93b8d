package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/internal/usecase"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewMode int

const (
	viewTable viewMode = iota
	viewPipeline
)

const scoreStep = 10

type prospectsMsg usecase.ProspectResult

type campaignsMsg usecase.CampaignResult

type statusUpdatedMsg struct {
	id     string
	status domain.ProspectStatus
	err    error
}

// Model is the interactive dashboard.
type Model struct {
	ctx       context.Context
	api       domain.DashboardAPI
	state     *usecase.FilterState
	prospects *usecase.ProspectLoader
	campaigns *usecase.CampaignLoader
	theme     *Theme
	styles    Styles
	logger    *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	spinner spinner.Model
	search  textinput.Model

	searching        bool
	loadingProspects bool
	loadingCampaigns bool
	mode             viewMode
	sortState        domain.SortState
	statusFilter     int
	cursor           int
	width            int

	rows          []domain.Prospect
	loaded        []domain.Prospect
	summary       domain.DashboardMetrics
	pipeline      domain.Pipeline
	chart         domain.ChartData
	campaignCount int
	prospectErr   string
	campaignErr   string
	notice        string
}

func NewModel(ctx context.Context, api domain.DashboardAPI, theme *Theme, logger *logger.Logger, metrics *metrics.Metrics) Model {
	state := usecase.NewFilterState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "name, company, title or email"
	ti.Prompt = "Search: "
	ti.CharLimit = 120

	m := Model{
		ctx:              ctx,
		api:              api,
		state:            state,
		prospects:        usecase.NewProspectLoader(api, state, logger, metrics),
		campaigns:        usecase.NewCampaignLoader(api, state, logger, metrics),
		theme:            theme,
		logger:           logger,
		metrics:          metrics,
		now:              time.Now,
		spinner:          sp,
		search:           ti,
		loadingProspects: true,
		loadingCampaigns: true,
		statusFilter:     -1,
		cursor:           0,
		width:            120,
		pipeline:         usecase.GroupPipeline(nil, domain.AllStatuses()),
	}
	m.applyTheme()
	return m
}

// WithFilters starts the model from f instead of the default filters.
func (m Model) WithFilters(f domain.FilterOptions) (Model, error) {
	_, err := m.state.Update(f.AsPatch())
	if err != nil {
		return m, err
	}
	m.search.SetValue(f.Search)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchProspects(m.state.Refresh()),
		m.fetchCampaigns(m.state.RefreshCampaigns()),
	)
}

func (m Model) fetchProspects(ticket usecase.FetchTicket) tea.Cmd {
	return func() tea.Msg {
		return prospectsMsg(m.prospects.Load(m.ctx, ticket))
	}
}

func (m Model) fetchCampaigns(seq uint64) tea.Cmd {
	return func() tea.Msg {
		return campaignsMsg(m.campaigns.Load(m.ctx, seq))
	}
}

func (m Model) updateStatus(id string, status domain.ProspectStatus) tea.Cmd {
	return func() tea.Msg {
		err := m.api.UpdateProspectStatus(m.ctx, id, status)
		return statusUpdatedMsg{id: id, status: status, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case prospectsMsg:
		m.applyProspects(usecase.ProspectResult(msg))
		return m, nil

	case campaignsMsg:
		if !m.campaigns.Apply(usecase.CampaignResult(msg)) {
			return m, nil
		}
		m.loadingCampaigns = false
		if msg.Err != nil {
			m.campaignErr = usecase.ErrorMessage(msg.Err)
			return m, nil
		}
		m.campaignErr = ""
		m.chart = msg.Chart
		m.campaignCount = len(msg.Campaigns)
		return m, nil

	case statusUpdatedMsg:
		if msg.err != nil {
			m.notice = "Status update failed: " + usecase.ErrorMessage(msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("Moved %s to %s", msg.id, msg.status.Label())
		return m.refetch(m.state.Refresh())

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		text := strings.TrimSpace(m.search.Value())
		return m.applyPatch(domain.FilterPatch{Search: &text})
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.state.Current().Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.state.Close()
		return m, tea.Quit

	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case "s":
		statuses := domain.AllStatuses()
		m.statusFilter++
		if m.statusFilter >= len(statuses) {
			m.statusFilter = -1
		}
		selected := []domain.ProspectStatus{}
		if m.statusFilter >= 0 {
			selected = append(selected, statuses[m.statusFilter])
		}
		return m.applyPatch(domain.FilterPatch{Status: &selected})

	case "[", "]":
		current := domain.FullScoreRange()
		if r := m.state.Current().LeadScore; r != nil {
			current = *r
		}
		if key == "[" {
			current.Min -= scoreStep
		} else {
			current.Min += scoreStep
		}
		return m.applyPatch(domain.FilterPatch{LeadScore: &current})

	case "c":
		m.statusFilter = -1
		m.search.SetValue("")
		m.notice = "Filters cleared"
		return m.refetch(m.state.Clear())

	case "r":
		m.loadingCampaigns = true
		model, cmd := m.refetch(m.state.Refresh())
		return model, tea.Batch(cmd, m.fetchCampaigns(m.state.RefreshCampaigns()))

	case "v":
		if m.mode == viewTable {
			m.mode = viewPipeline
		} else {
			m.mode = viewTable
		}
		return m, nil

	case "t":
		mode, err := m.theme.Toggle()
		m.applyTheme()
		if err != nil {
			m.logger.WithError(err).Warn("Failed to persist theme")
			m.notice = "Theme changed but not saved: " + err.Error()
		} else {
			m.notice = "Theme: " + string(mode)
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "x":
		if m.cursor < 0 || m.cursor >= len(m.rows) {
			return m, nil
		}
		p := m.rows[m.cursor]
		return m, m.updateStatus(p.ID, nextStatus(p.Status))
	}

	if i := sortColumnIndex(key); i >= 0 {
		m.sortState = m.sortState.Request(tableColumns[i].key)
		m.rows = usecase.SortProspects(m.loaded, m.sortState)
		return m, nil
	}

	return m, nil
}

func sortColumnIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	i := int(key[0] - '1')
	if i >= len(tableColumns) {
		return -1
	}
	return i
}

// nextStatus walks the pipeline order and wraps around.
func nextStatus(s domain.ProspectStatus) domain.ProspectStatus {
	statuses := domain.AllStatuses()
	for i, st := range statuses {
		if st == s {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return statuses[0]
}

func (m Model) applyPatch(patch domain.FilterPatch) (tea.Model, tea.Cmd) {
	ticket, err := m.state.Update(patch)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	return m.refetch(ticket)
}

func (m Model) refetch(ticket usecase.FetchTicket) (tea.Model, tea.Cmd) {
	m.loadingProspects = true
	return m, m.fetchProspects(ticket)
}

func (m *Model) applyProspects(result usecase.ProspectResult) {
	if !m.prospects.Apply(result) {
		return
	}
	m.loadingProspects = false

	if result.Err != nil {
		m.prospectErr = usecase.ErrorMessage(result.Err)
		return
	}
	m.prospectErr = ""

	m.loaded = result.Prospects
	m.summary = usecase.ComputeMetrics(m.loaded)
	m.pipeline = usecase.GroupPipeline(m.loaded, domain.AllStatuses())
	m.rows = usecase.SortProspects(m.loaded, m.sortState)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}

	if m.pipeline.Unassigned > 0 {
		m.metrics.RecordUnassigned(m.pipeline.Unassigned)
		m.logger.WithField("count", m.pipeline.Unassigned).Warn("Prospects with unknown status left out of the pipeline")
	}
}

func (m *Model) applyTheme() {
	m.styles = m.theme.Styles()
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Palette.Accent)
}

func (m Model) View() string {
	s := m.styles
	sections := []string{m.header()}

	if m.searching {
		sections = append(sections, m.search.View())
	}
	sections = append(sections, m.filterSummary())

	if m.prospectErr != "" {
		sections = append(sections, RenderError(s, m.prospectErr))
	} else {
		sections = append(sections, RenderMetrics(s, m.summary))
	}

	if m.campaignErr != "" {
		sections = append(sections, RenderError(s, m.campaignErr))
	} else if !m.loadingCampaigns {
		sections = append(sections, RenderChart(s, m.chart, m.campaignCount, m.width))
	}

	if m.prospectErr == "" {
		switch m.mode {
		case viewTable:
			sections = append(sections, RenderTable(s, m.rows, m.sortState, m.cursor, m.now()))
		case viewPipeline:
			sections = append(sections, RenderPipeline(s, m.pipeline))
		}
	}

	if m.notice != "" {
		sections = append(sections, s.Warn.Render(m.notice))
	}
	sections = append(sections, s.Help.Render(
		"/ search • s status • [ ] min score • c clear • 1-7 sort • v table/pipeline • x advance status • r refresh • t theme • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) header() string {
	title := m.styles.Header.Render("ProspectAI Dashboard")
	if m.loadingProspects || m.loadingCampaigns {
		return title + " " + m.spinner.View() + m.styles.Muted.Render(" loading")
	}
	return title
}

func (m Model) filterSummary() string {
	f := m.state.Current()
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	if len(f.Status) > 0 {
		labels := make([]string, len(f.Status))
		for i, st := range f.Status {
			labels[i] = st.Label()
		}
		parts = append(parts, "status "+strings.Join(labels, ", "))
	}
	if f.LeadScore != nil && *f.LeadScore != domain.FullScoreRange() {
		parts = append(parts, fmt.Sprintf("score %d-%d", f.LeadScore.Min, f.LeadScore.Max))
	}
	if len(parts) == 0 {
		return m.styles.Muted.Render("Filters: none")
	}
	return m.styles.Muted.Render("Filters: " + strings.Join(parts, " • "))
}
