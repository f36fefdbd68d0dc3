package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pkhk-scout/internal/config"
	"github.com/mauv0809/pkhk-scout/internal/database"
	"github.com/mauv0809/pkhk-scout/internal/history"
	"github.com/mauv0809/pkhk-scout/internal/metrics"
	"github.com/mauv0809/pkhk-scout/internal/notifier/slack"
	"github.com/mauv0809/pkhk-scout/internal/pubsub"
	"github.com/mauv0809/pkhk-scout/internal/runner"
	"github.com/mauv0809/pkhk-scout/internal/swimming"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	club        string
	interval    time.Duration
	timeout     time.Duration
	xlsxOutput  string
	metricsFile string
	dryRun      bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "pkhk-scout [input_file] [output_file]",
	Short: "Find club members in the Czech Swimming results portal",
	Long: `pkhk-scout reads a list of names, one person per line with the surname
last, looks each of them up in the Czech Swimming results portal and writes
the ones registered with the club (PKHK unless --club says otherwise) to the
output file as a name line followed by a user id line.

input_file defaults to names_list.txt and output_file to pkhk_members.txt.`,
	Args:              cobra.RangeArgs(0, 2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runLookup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&club, "club", config.DefaultClubAbbrev, "Club abbreviation to look for")
	flags.DurationVar(&interval, "interval", config.DefaultRequestInterval, "Minimum delay between two requests")
	flags.DurationVar(&timeout, "timeout", config.DefaultRequestTimeout, "Timeout of a single request")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&xlsxOutput, "xlsx", "", "Also write the members to this Excel workbook")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Perform the lookups but write, record and send nothing")
}

// setup loads the configuration, lets explicitly set flags override it and
// configures logging.
func setup(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stdout)
	cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("club") {
		cfg.ClubAbbrev = club
	}
	if flags.Changed("interval") {
		cfg.RequestInterval = interval
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = timeout
	}
	if flags.Changed("xlsx") {
		cfg.XLSXOutput = xlsxOutput
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if cfg.RequestInterval < 0 || cfg.RequestTimeout < 0 {
		return fmt.Errorf("interval and timeout must not be negative")
	}
	if cfg.ClubAbbrev == "" {
		return fmt.Errorf("club abbreviation must not be empty")
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	return nil
}

func newSearchClient() *swimming.APIClient {
	return swimming.NewClient(swimming.Options{
		BaseURL:  cfg.SearchBaseURL,
		Timeout:  cfg.RequestTimeout,
		Interval: cfg.RequestInterval,
	})
}

// openHistory returns nil, nil when no history database is configured.
func openHistory() (history.Store, func(), error) {
	if !cfg.HistoryEnabled() {
		return nil, func() {}, nil
	}
	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return nil, func() {}, err
	}
	teardown := func() {
		log.Debug("Closing database connection")
		db.Close()
	}
	return history.New(db), teardown, nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input, output := config.DefaultInputFile, config.DefaultOutputFile
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	metricsSvc := metrics.NewService()
	r := runner.New(newSearchClient(), metricsSvc, runner.Options{
		Club:        cfg.ClubAbbrev,
		XLSXOutput:  cfg.XLSXOutput,
		MetricsFile: cfg.MetricsFile,
		DryRun:      dryRun,
	})

	store, teardown, err := openHistory()
	if err != nil {
		log.Error("Failed to initialize history database, continuing without it", "error", err)
	} else if store != nil {
		defer teardown()
		r.WithHistory(store)
	}

	if cfg.SlackEnabled() {
		r.WithNotifier(slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc))
	}

	if cfg.PubSubEnabled() {
		ps, err := pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Error("Failed to initialize pubsub, continuing without it", "error", err)
		} else {
			defer ps.Close()
			r.WithPubSub(ps)
		}
	}

	_, err = r.Run(ctx, input, output)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("pkhk-scout failed", "error", err)
		stop()
		os.Exit(1)
	}
}
