package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ChartArcade/internal/collector"
	"ChartArcade/internal/config"
	"ChartArcade/internal/pipeline"
	"ChartArcade/internal/recorder"
	"ChartArcade/internal/scheduler"
	"ChartArcade/internal/store"
)

var (
	cfgPath         string
	refreshMetadata bool
	schedule        string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "chart-arcade",
	Short: "Chart Arcade stock data fetcher",
	Long: `Downloads historical daily OHLCV bars from Yahoo Finance and saves them
as JSON files ready for the Chart Arcade application, then rebuilds a
metadata index over every stock record on disk.

Examples:
  # Fetch all configured symbols and rebuild the index
  chart-arcade

  # Rescan the stocks directory and rewrite the index without fetching
  chart-arcade --refresh-metadata

  # Refresh the data set every weekday evening
  chart-arcade --schedule "0 0 22 * * 1-5"`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config file")
	rootCmd.Flags().BoolVar(&refreshMetadata, "refresh-metadata", false, "skip fetching, rescan the stocks directory and rewrite the index only")
	rootCmd.Flags().StringVar(&schedule, "schedule", "", "cron spec; run the fetch pipeline on a schedule instead of once")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Infof("data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.Lookup.Names, cfg.Lookup.Sectors)
	st := store.NewStore(cfg.Output.StocksDir, log)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("opening sqlite journal failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := &pipeline.Pipeline{
		Collector:        col,
		Store:            st,
		Recorder:         rec,
		Symbols:          cfg.Fetch.Symbols,
		Years:            cfg.Fetch.Years,
		MetadataFile:     cfg.Output.MetadataFile,
		GapThresholdDays: cfg.Report.GapThresholdDays,
		Out:              os.Stdout,
		Log:              log,
	}

	if refreshMetadata {
		return p.RefreshMetadata()
	}

	if schedule == "" {
		schedule = cfg.Schedule
	}
	if schedule != "" {
		return runScheduled(p, schedule, log)
	}

	return p.Run(context.Background())
}

func runScheduled(p *pipeline.Pipeline, spec string, log *logrus.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, p, log)
	if err := sched.Register(spec); err != nil {
		return fmt.Errorf("register fetch schedule: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Infof("fetch scheduled with spec %q, press Ctrl+C to stop", spec)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}
