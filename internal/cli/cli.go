package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"volleycal/internal/config"
	"volleycal/internal/picker"
	"volleycal/internal/storage"
	"volleycal/internal/volley"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 2
)

// errExit carries a specific process exit code for outcomes that were already
// reported to the user, like a partial failure listed in the summary. Only
// Execute turns it into an actual exit.
type errExit int

func (e errExit) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

var (
	flagUpdateExisting bool
	flagDryRun         bool
	flagConfig         string
	flagCalendarDir    string
	flagFormat         string
	flagYear           int
	flagVerbose        bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volleycal",
		Short: "Generate .ics calendars for Volleyball World championships",
		Long: `Discovers the currently active Volleyball World championships, lets you
pick which ones to track, and writes their match schedules as .ics calendar
files under calendars/<season>/<slug>.ics. Existing files are merged, never
overwritten blindly: a refetched match updates its event, and events the API
no longer reports are retained.`,
		RunE:          runSync,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&flagUpdateExisting, "update-existing", false, "Update only championships that already have a calendar file")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "List active championships without fetching matches or writing files")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: volleycal.yaml if present)")
	cmd.Flags().StringVar(&flagCalendarDir, "calendar-dir", "", "Calendar output directory (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Discovery year (default: current year)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runSync is the main command logic
func runSync(cmd *cobra.Command, args []string) error {
	if flagUpdateExisting && flagDryRun {
		return fmt.Errorf("--update-existing and --dry-run are mutually exclusive")
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	log := newLogger(flagVerbose)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagCalendarDir != "" {
		cfg.CalendarDir = flagCalendarDir
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.CalendarDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	client := volley.NewClient(cfg.BaseURL, cfg.RetryConfig(), log)

	now := time.Now()
	year := flagYear
	if year == 0 {
		year = now.Year()
	}

	log.WithField("year", year).Debug("discovering championships")

	// Discovery failure aborts the whole run; nothing downstream can
	// proceed without the championship list.
	champs, err := client.Competitions(year)
	if err != nil {
		return fmt.Errorf("discovering championships: %w", err)
	}

	active := volley.Active(champs, now)
	if len(active) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No active championships found.")
		return nil
	}

	choices := make([]picker.Choice, 0, len(active))
	for _, ch := range active {
		choices = append(choices, picker.Choice{
			Championship: ch,
			HasCalendar:  store.Exists(ch.Season, ch.Slug),
		})
	}

	selected, err := picker.Select(selectionMode(), choices, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		if errors.Is(err, picker.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing written.")
			return errExit(ExitError)
		}
		return err
	}

	if flagDryRun {
		writeDryRun(cmd.OutOrStdout(), choices)
		return nil
	}

	if len(selected) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No championships selected, nothing to do.")
		return nil
	}

	r := &runner{
		client: client,
		store:  store,
		loc:    loc,
		log:    log,
		now:    now,
		pause:  time.Duration(cfg.FetchPause),
	}

	results := make([]RunResult, 0, len(selected))
	for _, ch := range selected {
		results = append(results, r.process(ch))
	}

	if err := WriteSummary(cmd.OutOrStdout(), results, format); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	for _, res := range results {
		if res.Status == StatusFailed {
			return errExit(ExitPartial)
		}
	}
	return nil
}

// selectionMode maps the mutually exclusive flags onto a picker mode.
func selectionMode() picker.Mode {
	switch {
	case flagDryRun:
		return picker.ModeDryRun
	case flagUpdateExisting:
		return picker.ModeUpdateExisting
	default:
		return picker.ModeInteractive
	}
}

// newLogger builds the run's logger. Logs go to stderr so stdout stays clean
// for the checklist and the summary.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var code errExit
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
