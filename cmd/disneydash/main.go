// Package main provides the CLI entrypoint for disneydash.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/disneydash/internal/api"
	"github.com/verte-zerg/disneydash/internal/characters"
	"github.com/verte-zerg/disneydash/internal/config"
	"github.com/verte-zerg/disneydash/internal/export"
	"github.com/verte-zerg/disneydash/internal/films"
	"github.com/verte-zerg/disneydash/internal/journal"
	"github.com/verte-zerg/disneydash/internal/logging"
	"github.com/verte-zerg/disneydash/internal/model"
	"github.com/verte-zerg/disneydash/internal/tui"
)

const defaultJournalLimit = 20

var (
	configPath   string
	baseURL      string
	timeout      time.Duration
	pageSize     int
	journalPath  string
	logLevel     string
	exportDir    string
	exportFormat string

	dashDebounce time.Duration

	queryPage   int
	queryName   string
	queryTVShow string
	listSort    string
	filmsExport bool

	journalLimit int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "disneydash",
		Short:         "Disney characters dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&baseURL, "base-url", defaults.BaseURL, "characters API base URL")
	flags.DurationVar(&timeout, "timeout", defaults.Timeout, "API request timeout")
	flags.IntVar(&pageSize, "page-size", defaults.PageSize, "records per page")
	flags.StringVar(&journalPath, "journal", defaults.JournalPath, "fetch journal database (:memory: keeps it in-process)")
	flags.StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&exportDir, "export-dir", defaults.ExportDir, "directory for exported files")
	flags.StringVar(&exportFormat, "export-format", defaults.ExportFormat, "export format (xlsx, csv, pdf)")

	rootCmd.Flags().DurationVar(&dashDebounce, "debounce", defaults.Debounce, "filter input quiet period")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFilmsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newJournalCmd())

	return rootCmd
}

// resolveConfig merges defaults, the config file and changed flags, in
// that order, and validates the result.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	cfg := config.Defaults()
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := fileCfg.Apply(&cfg); err != nil {
		return model.Config{}, err
	}
	applyStringFlag(cmd, "base-url", &cfg.BaseURL, baseURL)
	applyDurationFlag(cmd, "timeout", &cfg.Timeout, timeout)
	applyIntFlag(cmd, "page-size", &cfg.PageSize, pageSize)
	applyStringFlag(cmd, "journal", &cfg.JournalPath, config.ExpandHome(journalPath))
	applyStringFlag(cmd, "log-level", &cfg.LogLevel, strings.ToLower(logLevel))
	applyStringFlag(cmd, "export-dir", &cfg.ExportDir, config.ExpandHome(exportDir))
	applyStringFlag(cmd, "export-format", &cfg.ExportFormat, strings.ToLower(exportFormat))
	applyDurationFlag(cmd, "debounce", &cfg.Debounce, dashDebounce)

	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newClient(cfg model.Config) *api.Client {
	return api.New(api.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
	})
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logging.Init(logging.Config{Level: cfg.LogLevel, Output: logFile})

	jr, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := jr.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}

	logging.Info().Str("base_url", cfg.BaseURL).Int("page_size", cfg.PageSize).Msg("starting dashboard")
	m := tui.NewModel(tui.Options{
		Fetcher:      newClient(cfg),
		Journal:      jr,
		PageSize:     cfg.PageSize,
		Debounce:     cfg.Debounce,
		ExportDir:    cfg.ExportDir,
		ExportFormat: format,
	})
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&queryPage, "page", model.DefaultPage, "page to fetch")
	cmd.Flags().StringVar(&queryName, "name", "", "filter by character name")
	cmd.Flags().StringVar(&queryTVShow, "tv-show", "", "filter by TV show")
}

func queryParams(size int) (model.RequestParams, error) {
	if queryPage < 1 {
		return model.RequestParams{}, fmt.Errorf("--page must be >= 1")
	}
	name := strings.TrimSpace(queryName)
	show := strings.TrimSpace(queryTVShow)
	if name != "" && show != "" {
		return model.RequestParams{}, fmt.Errorf("--name and --tv-show are mutually exclusive")
	}
	params := model.DefaultParams(size)
	switch {
	case name != "":
		params = params.WithFilter(model.FilterName, name)
	case show != "":
		params = params.WithFilter(model.FilterTVShows, show)
	}
	return params.WithPage(queryPage), nil
}

// fetchOnce runs a single request and folds it into a fresh store so the
// CLI reads results through the same selectors as the dashboard.
func fetchOnce(cmd *cobra.Command) (model.Config, characters.State, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return model.Config{}, characters.State{}, err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Console: true, Output: cmd.ErrOrStderr()})

	params, err := queryParams(cfg.PageSize)
	if err != nil {
		return model.Config{}, characters.State{}, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := characters.Fetch(ctx, newClient(cfg), params)
	state := characters.ApplyResult(characters.NewState(cfg.PageSize), res)
	recordOnce(ctx, cfg, res)
	if msg := characters.Error(state); msg != "" {
		return cfg, state, fmt.Errorf("failed to fetch characters: %s", msg)
	}
	return cfg, state, nil
}

func recordOnce(ctx context.Context, cfg model.Config, res characters.Result) {
	if journal.IsMemory(cfg.JournalPath) {
		return
	}
	jr, err := journal.Open(cfg.JournalPath)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to open journal")
		return
	}
	defer func() {
		if cerr := jr.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("failed to close journal")
		}
	}()
	if _, err := jr.Record(ctx, journal.FromResult(res, time.Now())); err != nil {
		logging.Warn().Err(err).Msg("failed to record fetch")
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of characters",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	addQueryFlags(cmd)
	cmd.Flags().StringVar(&listSort, "sort", "asc", "name sort order (asc, desc)")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	order, ok := model.ParseSortOrder(strings.ToLower(listSort))
	if !ok {
		return fmt.Errorf("--sort must be asc or desc")
	}
	_, state, err := fetchOnce(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	records := characters.SortByName(characters.Records(state), order)
	if len(records) == 0 {
		return writeLine(out, "No results found")
	}
	if err := writeLine(out, renderCharacters(records)); err != nil {
		return err
	}
	return writeLine(out, pageSummary(state))
}

func renderCharacters(records []model.Character) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.ID),
			rec.Name,
			strconv.Itoa(len(rec.Films)),
			strconv.Itoa(len(rec.TVShows)),
			strings.Join(rec.VideoGames, ", "),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("ID", "Name", "Films", "TV Shows", "Video Games").
		Rows(rows...)
	return t.String()
}

func pageSummary(state characters.State) string {
	params := characters.Params(state)
	total := "unknown"
	if count := characters.TotalCount(state); count != characters.UnknownCount {
		total = strconv.Itoa(count)
	}
	pages := "?"
	if n, ok := characters.TotalPages(state); ok {
		pages = strconv.Itoa(n)
	}
	return fmt.Sprintf("Page %d of %s · %d per page · total: %s", params.Page, pages, params.PageSize, total)
}

func newFilmsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "films",
		Short: "Show films participation for one page of characters",
		Args:  cobra.NoArgs,
		RunE:  runFilmsCmd,
	}
	addQueryFlags(cmd)
	cmd.Flags().BoolVar(&filmsExport, "export", false, "write the table to the export directory")
	return cmd
}

func runFilmsCmd(cmd *cobra.Command, _ []string) error {
	cfg, state, err := fetchOnce(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	entries := films.Aggregate(characters.Records(state))
	if len(entries) == 0 {
		return writeLine(out, "No film appearances on this page")
	}
	page := characters.Params(state).Page
	if err := writeLine(out, films.Title(page)); err != nil {
		return err
	}
	if err := films.RenderChart(out, entries, films.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := writeLine(out, ""); err != nil {
		return err
	}
	if err := films.RenderTable(out, entries); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if !filmsExport {
		return nil
	}
	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}
	path, err := export.ToFile(cfg.ExportDir, films.FileBase(page), format, films.Header, films.Rows(entries))
	if err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent characters requests",
		Args:  cobra.NoArgs,
		RunE:  runJournalCmd,
	}
	cmd.Flags().IntVar(&journalLimit, "last", defaultJournalLimit, "number of entries to show")
	return cmd
}

func runJournalCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if journal.IsMemory(cfg.JournalPath) {
		return fmt.Errorf("journal is kept in memory; set --journal or dashboard.journal to a file (e.g. %s)", config.DefaultJournalFile())
	}
	if journalLimit <= 0 {
		return fmt.Errorf("--last must be > 0")
	}
	jr, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := jr.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := jr.Recent(ctx, journalLimit)
	if err != nil {
		return err
	}
	summary, err := jr.Summary(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		return writeLine(out, "No requests recorded yet")
	}
	if err := writeLine(out, renderJournal(entries)); err != nil {
		return err
	}
	return writeLine(out, journalSummary(summary))
}

func renderJournal(entries []journal.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		filter := "-"
		switch {
		case e.Name != "":
			filter = "name=" + e.Name
		case e.TVShows != "":
			filter = "tvShows=" + e.TVShows
		}
		outcome := e.Outcome
		if e.Error != "" {
			outcome += ": " + e.Error
		}
		rows = append(rows, []string{
			e.SettledAt.Local().Format(time.DateTime),
			strconv.Itoa(e.Page),
			strconv.Itoa(e.PageSize),
			filter,
			strconv.Itoa(e.Records),
			e.Duration.Round(time.Millisecond).String(),
			outcome,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Settled", "Page", "Size", "Filter", "Records", "Took", "Outcome").
		Rows(rows...)
	return t.String()
}

func journalSummary(s journal.Summary) string {
	line := fmt.Sprintf("%d requests · %d failed · avg %s", s.Total, s.Failures, s.AvgDuration.Round(time.Millisecond))
	if !s.LastSettled.IsZero() {
		line += " · last " + s.LastSettled.Local().Format(time.DateTime)
	}
	return line
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyDurationFlag(cmd *cobra.Command, name string, target *time.Duration, value time.Duration) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func writeLine(w io.Writer, line string) error {
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
