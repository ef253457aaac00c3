package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sapling/internal/extractor"
	"sapling/internal/logging"
)

// newParseAssetCommand is the worker entry point spawned by the build
// scheduler, one process per asset. Stdout carries exactly one JSON record;
// diagnostics go to stderr only.
func newParseAssetCommand(ctx *commandContext) *cobra.Command {
	var assetFlag string
	var sdkFlag string

	cmd := &cobra.Command{
		Use:         "parse-asset",
		Short:       "Parse one asset and print its record as JSON",
		Hidden:      true,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{
				Level:       ctx.logLevel(),
				Format:      "console",
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return err
			}

			sdk, err := extractor.NewSDK(sdkFlag)
			if err != nil {
				return err
			}

			raw, err := sdk.Dump(cmd.Context(), assetFlag)
			if err != nil {
				return fmt.Errorf("dump asset: %w", err)
			}
			rec, err := extractor.BuildRecord(raw, assetFlag, logger)
			if err != nil {
				return fmt.Errorf("assemble record: %w", err)
			}
			return extractor.WriteRecord(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().StringVarP(&assetFlag, "file", "f", "", "Asset file to parse")
	cmd.Flags().StringVarP(&sdkFlag, "sdk", "s", "", "Vendor extractor executable")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("sdk")
	return cmd
}
