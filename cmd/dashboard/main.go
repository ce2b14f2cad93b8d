package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"prospectdash/internal/infrastructure"
	"prospectdash/internal/tui"
	"prospectdash/pkg/config"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries everything the subcommands share. It is built in
// PersistentPreRunE once flags are parsed.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	logFile io.Closer
	metrics *metrics.Metrics
	api     *infrastructure.APIClient
	theme   *tui.Theme
}

var (
	state   = &app{}
	apiURL  string
	filters filterFlags
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Sales prospecting dashboard for the terminal",
	Long: `dashboard renders prospects, campaign performance and the outreach pipeline
served by the prospectdash API.

Run without a subcommand to start the interactive view.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return state.init()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		state.close()
	},
	RunE: runView,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "dashboard API base URL (overrides DASHBOARD_API_URL)")
	filters.register(rootCmd)

	rootCmd.AddCommand(viewCmd, snapshotCmd, metricsCmd, chartCmd, pipelineCmd, tableCmd, statusCmd, settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiURL != "" {
		cfg.Client.APIURL = apiURL
	}
	a.cfg = cfg

	logPath := cfg.UI.LogFile
	if logPath == "" {
		logPath = defaultPath(os.UserCacheDir, "dashboard.log")
	}
	var out io.Writer = io.Discard
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
				a.logFile = f
			}
		}
	}
	a.log = logger.NewWithOutput(cfg.Logging.Level, out)

	// the CLI never serves /metrics; a private registry keeps the counters
	// usable without touching the global one
	a.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())

	a.api = infrastructure.NewAPIClient(cfg.Client.APIURL, cfg.Client.RequestTimeout, cfg.Client.RateLimitPerSecond, a.log, a.metrics)

	themePath := cfg.UI.ThemeFile
	if themePath == "" {
		themePath = defaultPath(os.UserConfigDir, "theme")
	}
	a.theme = tui.LoadTheme(themePath, lipgloss.HasDarkBackground)

	a.log.WithFields(map[string]any{
		"api_url": cfg.Client.APIURL,
		"theme":   a.theme.Mode(),
	}).Info("Dashboard started")
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// defaultPath places name under prospectdash/ in the directory dir returns,
// or returns "" when the directory is unknown.
func defaultPath(dir func() (string, error), name string) string {
	base, err := dir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "prospectdash", name)
}
