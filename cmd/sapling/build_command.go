package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sapling/internal/builder"
	"sapling/internal/catalog"
	"sapling/internal/extractor"
	"sapling/internal/logging"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var databaseFlag string
	var assetsFlag string
	var sdkFlag string
	var workers int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild the catalog database from an asset tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			databasePath := firstNonEmpty(databaseFlag, cfg.Paths.DatabasePath)
			assetsDir := firstNonEmpty(assetsFlag, cfg.Paths.AssetsDir)
			sdkPath := firstNonEmpty(sdkFlag, cfg.Extractor.SDKPath)
			if assetsDir == "" {
				return fmt.Errorf("asset directory required; pass --assets or set paths.assets_dir")
			}
			if sdkPath == "" {
				return fmt.Errorf("extractor path required; pass --sdk or set extractor.sdk_path")
			}
			if workers == 0 {
				workers = cfg.Extractor.Workers
			}

			if _, err := os.Stat(assetsDir); err != nil {
				return fmt.Errorf("asset directory %s: %w", assetsDir, err)
			}

			store, err := catalog.Open(databasePath, cfg.Locale, true, logger)
			if err != nil {
				return err
			}

			sdk, err := extractor.NewSDK(sdkPath)
			if err != nil {
				return err
			}
			parser, err := extractor.NewCLI(sdkPath,
				extractor.WithLogLevel(logging.LevelName(cfg.Logging.Level)))
			if err != nil {
				return err
			}

			b, err := builder.New(store, parser, sdk, logger, builder.WithWorkers(workers))
			if err != nil {
				return err
			}

			succeeded, total, err := b.Build(cmd.Context(), assetsDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d/%d models\n", succeeded, total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&databaseFlag, "database", "d", "", "Database file path (defaults to the configured path)")
	cmd.Flags().StringVarP(&assetsFlag, "assets", "p", "", "Asset tree to scan")
	cmd.Flags().StringVarP(&sdkFlag, "sdk", "s", "", "Vendor extractor executable")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel worker processes (0 selects the CPU count)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
