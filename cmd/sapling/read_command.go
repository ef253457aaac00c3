package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sapling/internal/catalog"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var databaseFlag string
	var localeFlag string
	var long bool

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print a summary of the catalog database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path := strings.TrimSpace(databaseFlag)
			if path == "" {
				path = cfg.Paths.DatabasePath
			}
			locale := strings.TrimSpace(localeFlag)
			if locale == "" {
				locale = cfg.Locale
			}

			store, err := catalog.Open(path, locale, false, logger)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("no database at %s; run `sapling build` to create one", path)
				}
				return err
			}

			out := cmd.OutOrStdout()
			info := store.Info()
			fmt.Fprintf(out, "Database: %s\n", store.Path())
			fmt.Fprintf(out, "SDK version: %s (%d.%d.%d)\n", info.SDKVersion, info.SDKMajor, info.SDKMinor, info.SDKMicro)
			fmt.Fprintf(out, "Schema version: %d\n", info.SchemaVersion)
			fmt.Fprintf(out, "Locale: %s\n", store.Locale())
			fmt.Fprintf(out, "Models: %d\n", store.ModelCount())

			if store.ModelCount() == 0 {
				return nil
			}
			fmt.Fprintln(out)

			if long {
				printModelDetail(out, store)
				return nil
			}

			headers := []string{"Model", "Label", "Variants", "Default Variant"}
			var rows [][]string
			for model := range store.Models() {
				names := make([]string, 0, len(model.Variants))
				for _, variant := range model.Variants {
					names = append(names, variant.Name)
				}
				rows = append(rows, []string{
					model.Name,
					model.Label,
					strconv.Itoa(len(names)) + ": " + strings.Join(names, ", "),
					model.Variant("").Name,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&databaseFlag, "database", "d", "", "Database file path (defaults to the configured path)")
	cmd.Flags().StringVar(&localeFlag, "locale", "", "Locale for resolved labels")
	cmd.Flags().BoolVar(&long, "long", false, "Print per-model variant and season detail")
	return cmd
}

func printModelDetail(out io.Writer, store *catalog.Store) {
	for model := range store.Models() {
		fmt.Fprintf(out, "%s (%s)\n", model.Name, model.Label)
		fmt.Fprintf(out, "  file: %s\n", model.Filepath)
		fmt.Fprintf(out, "  md5: %s\n", model.MD5)
		if model.Preview != "" {
			fmt.Fprintf(out, "  preview: %s\n", model.Preview)
		}
		defaultVariant := model.Variant("")
		for _, variant := range model.Variants {
			marker := ""
			if defaultVariant != nil && variant.Name == defaultVariant.Name {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  variant %s (%s)%s\n", variant.Name, variant.Label, marker)

			seasons := make([]string, 0, len(variant.Seasons))
			defaultSeason := variant.Season("")
			for _, season := range variant.Seasons {
				entry := fmt.Sprintf("%s (%s)", season.Name, season.Label)
				if season.Name == defaultSeason.Name {
					entry += "*"
				}
				seasons = append(seasons, entry)
			}
			if len(seasons) > 0 {
				fmt.Fprintf(out, "    seasons: %s\n", strings.Join(seasons, ", "))
			}
		}
		fmt.Fprintln(out)
	}
}
