package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"jpaddress/internal/config"
	"jpaddress/internal/logger"
	"jpaddress/internal/pipeline"
	"jpaddress/internal/source"
	"jpaddress/internal/writer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configDir   string
	concurrency bool
	workers     int
	output      string
	startPref   int
	endPref     int
)

var rootCmd = &cobra.Command{
	Use:          "builder",
	Short:        "Build the unified Japanese address dataset with kana, romanization and geohash",
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	rootCmd.Flags().StringVar(&configDir, "config", "configs", "directory containing app.env")
	rootCmd.Flags().BoolVar(&concurrency, "concurrency", false, "process prefectures concurrently (overrides CONCURRENCY)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "maximum prefectures in flight in concurrent mode (overrides WORKERS)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default DATA_DIR/OUTPUT_FILE)")
	rootCmd.Flags().IntVar(&startPref, "start", 1, "first prefecture number")
	rootCmd.Flags().IntVar(&endPref, "end", 47, "last prefecture number")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	outPath := output
	if outPath == "" {
		outPath = filepath.Join(cfg.DataDir, cfg.OutputFile)
	}
	if startPref < 1 || endPref > 47 || startPref > endPref {
		return fmt.Errorf("invalid prefecture range %d..%d, expected 1..47", startPref, endPref)
	}

	mode := "sequential"
	if cfg.Concurrency {
		mode = "concurrent"
	}
	runLog := log.With().Str("run_id", uuid.NewString()).Str("mode", mode).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := source.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout})
	driver := pipeline.NewDriver(fetcher, writer.NewCSVWriter(), pipeline.Options{
		KanaURL:        cfg.PostalKanaURL,
		RomeURL:        cfg.PostalRomeURL,
		ISJURLTemplate: cfg.ISJURLTemplate,
		ISJVersion:     cfg.ISJVersion,
		OutputPath:     outPath,
		FirstPref:      startPref,
		LastPref:       endPref,
		Concurrent:     cfg.Concurrency,
		Workers:        cfg.Workers,
	}, runLog)

	runLog.Info().Int("start", startPref).Int("end", endPref).Int("workers", cfg.Workers).Msg("build started")
	return driver.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}
}
