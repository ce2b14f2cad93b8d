package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/internal/tui"
	"prospectdash/internal/usecase"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type filterFlags struct {
	search      string
	industry    []string
	status      []string
	companySize []string
	location    []string
	tags        []string
	minScore    int
	maxScore    int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.search, "search", "", "match name, company, title or email")
	flags.StringSliceVar(&f.industry, "industry", nil, "industries to include")
	flags.StringSliceVar(&f.status, "status", nil, "statuses to include")
	flags.StringSliceVar(&f.companySize, "company-size", nil, "company sizes to include")
	flags.StringSliceVar(&f.location, "location", nil, "locations to include")
	flags.StringSliceVar(&f.tags, "tags", nil, "tags, any of which may match")
	flags.IntVar(&f.minScore, "min-score", -1, "lowest lead score")
	flags.IntVar(&f.maxScore, "max-score", -1, "highest lead score")
}

// options runs the flags through the same parser the API server uses.
func (f *filterFlags) options() (domain.FilterOptions, error) {
	q := url.Values{}
	set := func(key string, values []string) {
		if len(values) > 0 {
			q.Set(key, strings.Join(values, ","))
		}
	}
	if f.search != "" {
		q.Set(usecase.ParamSearch, f.search)
	}
	set(usecase.ParamIndustry, f.industry)
	set(usecase.ParamStatus, f.status)
	set(usecase.ParamCompanySize, f.companySize)
	set(usecase.ParamLocation, f.location)
	set(usecase.ParamTags, f.tags)
	if f.minScore >= 0 {
		q.Set(usecase.ParamLeadScoreMin, strconv.Itoa(f.minScore))
	}
	if f.maxScore >= 0 {
		q.Set(usecase.ParamLeadScoreMax, strconv.Itoa(f.maxScore))
	}

	opts, err := usecase.ParseProspectQuery(q)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	if opts.LeadScore == nil {
		full := domain.FullScoreRange()
		opts.LeadScore = &full
	}
	return opts, nil
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Start the interactive dashboard",
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	opts, err := filters.options()
	if err != nil {
		return err
	}

	model, err := tui.NewModel(cmd.Context(), state.api, state.theme, state.log, state.metrics).WithFilters(opts)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print metrics, campaign chart and prospect table once",
	RunE: func(cmd *cobra.Command, args []string) error {
		views, err := loadViews(cmd.Context())
		if err != nil {
			return err
		}
		s := state.theme.Styles()
		out := cmd.OutOrStdout()

		if views.Prospects.Err != nil {
			fmt.Fprintln(out, tui.RenderError(s, usecase.ErrorMessage(views.Prospects.Err)))
		} else {
			fmt.Fprintln(out, tui.RenderMetrics(s, usecase.ComputeMetrics(views.Prospects.Prospects)))
		}

		if views.Campaigns.Err != nil {
			fmt.Fprintln(out, tui.RenderError(s, usecase.ErrorMessage(views.Campaigns.Err)))
		} else {
			fmt.Fprintln(out, tui.RenderChart(s, views.Campaigns.Chart, len(views.Campaigns.Campaigns), 120))
		}

		if views.Prospects.Err == nil {
			fmt.Fprintln(out, tui.RenderTable(s, views.Prospects.Prospects, domain.SortState{}, -1, time.Now()))
		}
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the prospect summary cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		prospects, err := loadProspects(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMetrics(state.theme.Styles(), usecase.ComputeMetrics(prospects)))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print campaign performance by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := usecase.NewFilterState()
		result := usecase.NewCampaignLoader(state.api, fs, state.log, state.metrics).Load(cmd.Context(), fs.RefreshCampaigns())
		if result.Err != nil {
			return displayError(result.Err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderChart(state.theme.Styles(), result.Chart, len(result.Campaigns), 120))
		return nil
	},
}

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Print prospects grouped by pipeline stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		prospects, err := loadProspects(cmd.Context())
		if err != nil {
			return err
		}
		pipeline := usecase.GroupPipeline(prospects, domain.AllStatuses())
		if pipeline.Unassigned > 0 {
			state.metrics.RecordUnassigned(pipeline.Unassigned)
			state.log.WithField("count", pipeline.Unassigned).Warn("Prospects with unknown status left out of the pipeline")
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPipeline(state.theme.Styles(), pipeline))
		return nil
	},
}

var (
	sortKey  string
	sortDesc bool
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the prospect table",
	RunE: func(cmd *cobra.Command, args []string) error {
		var sortState domain.SortState
		if sortKey != "" {
			key, err := domain.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			sortState = sortState.Request(key)
			if sortDesc {
				sortState = sortState.Request(key)
			}
		}

		prospects, err := loadProspects(cmd.Context())
		if err != nil {
			return err
		}
		rows := usecase.SortProspects(prospects, sortState)
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable(state.theme.Styles(), rows, sortState, -1, time.Now()))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <prospect-id> <status>",
	Short: "Move a prospect to another pipeline stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := domain.ParseProspectStatus(args[1])
		if err != nil {
			return err
		}
		if err := state.api.UpdateProspectStatus(cmd.Context(), args[0], status); err != nil {
			return displayError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s moved to %s\n", args[0], status.Label())
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show organization settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := state.api.GetOrgSettings(cmd.Context())
		if err != nil {
			return displayError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSettings(state.theme.Styles(), settings))
		return nil
	},
}

var newSettings domain.OrgSettings

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save organization settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newSettings.Validate(); err != nil {
			return err
		}
		saved, err := state.api.SaveOrgSettings(cmd.Context(), newSettings)
		if err != nil {
			return displayError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSettings(state.theme.Styles(), saved))
		return nil
	},
}

func init() {
	tableCmd.Flags().StringVar(&sortKey, "sort", "", "column to sort by (name, company, leadScore, lastActivity, ...)")
	tableCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	flags := settingsSetCmd.Flags()
	flags.StringVar(&newSettings.FromName, "from-name", "", "sender name")
	flags.StringVar(&newSettings.FromEmail, "from-email", "", "sender address")
	flags.StringVar(&newSettings.CompanyName, "company-name", "", "company name")
	flags.StringVar(&newSettings.Website, "website", "", "company website")
	flags.StringVar(&newSettings.BrandVoice, "brand-voice", "", "tone for outreach copy")
}

func loadProspects(ctx context.Context) ([]domain.Prospect, error) {
	opts, err := filters.options()
	if err != nil {
		return nil, err
	}
	fs := usecase.NewFilterState()
	ticket, err := fs.Update(opts.AsPatch())
	if err != nil {
		return nil, err
	}
	result := usecase.NewProspectLoader(state.api, fs, state.log, state.metrics).Load(ctx, ticket)
	if result.Err != nil {
		return nil, displayError(result.Err)
	}
	return result.Prospects, nil
}

func loadViews(ctx context.Context) (usecase.Views, error) {
	opts, err := filters.options()
	if err != nil {
		return usecase.Views{}, err
	}
	fs := usecase.NewFilterState()
	ticket, err := fs.Update(opts.AsPatch())
	if err != nil {
		return usecase.Views{}, err
	}
	prospects := usecase.NewProspectLoader(state.api, fs, state.log, state.metrics)
	campaigns := usecase.NewCampaignLoader(state.api, fs, state.log, state.metrics)
	return usecase.LoadViews(ctx, prospects, campaigns, ticket), nil
}

func displayError(err error) error {
	return errors.New(usecase.ErrorMessage(err))
}
