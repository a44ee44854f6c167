// Package cli wires the crawler's config loader, logger, and worker pool
// behind a single cobra command. The spec's CLI surface takes no required
// flags — all behavior is config-file driven (spec.md §6) — so the only
// flag this command exposes is an optional override of the config path,
// mirroring the shape of the teacher's --config-file flag.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/falcongraph/crawler/internal/build"
	"github.com/falcongraph/crawler/internal/config"
	"github.com/falcongraph/crawler/internal/crawl"
	"github.com/falcongraph/crawler/internal/logging"
	"github.com/falcongraph/crawler/internal/metadata"
	"github.com/falcongraph/crawler/pkg/fileutil"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "falcongraph-crawler",
	Short: "A parallel web crawler that ingests a university's web presence into a local corpus.",
	Long: `falcongraph-crawler seeds a work frontier with a single start URL and a
domain allow-list, then fetches pages with a fixed pool of workers,
classifying each response as HTML or binary and writing it to disk
alongside a tab-separated metadata log.

All behavior is driven by config/pipeline.json (or the file named by
--config-file); this command takes no other flags.`,
	Version:      build.FullVersion(),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (defaults to config/pipeline.json discovered from the repo root)")
}

// Execute runs the root command. It returns the exit code the caller
// should pass to os.Exit: 0 on normal completion, non-zero on a setup
// failure the spec requires to be fatal (an unusable config path or an
// output directory that cannot be created).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if classifiedErr := fileutil.EnsureDir(cfg.RawOutput()); classifiedErr != nil {
		return fmt.Errorf("raw output directory: %w", classifiedErr)
	}

	logger := logging.Stderr()
	recorder := metadata.NewRecorder(logger)

	crawler := crawl.New(cfg, recorder)
	crawler.Run(context.Background())

	return nil
}

func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}

	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(wd)
}
