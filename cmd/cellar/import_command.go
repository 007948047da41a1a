package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/batch"
	"cellar/internal/catalog"
	"cellar/internal/config"
	"cellar/internal/keywords"
	"cellar/internal/metasearch"
	"cellar/internal/metasearch/providers"
	"cellar/internal/notifications"
	"cellar/internal/scan"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var bottleFlag string
	var excludeFlag []string
	var dryRunFlag bool
	var skipMatchFlag bool

	cmd := &cobra.Command{
		Use:   "import <directory>",
		Short: "Scan a directory and batch-import its games",
		Long: "Scan the first-level subdirectories of a library folder, match each\n" +
			"against the configured metadata providers, and append the selected\n" +
			"candidates to the catalogue in one commit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			candidates, err := scan.Directory(cmd.Context(), root, scan.Options{
				Extensions: cfg.Importer.ExecutableExtensions,
				MaxDepth:   cfg.Importer.MaxDepth,
			})
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Fprintln(out, "Nothing found to import.")
				return nil
			}

			providerList, err := providers.FromConfig(cfg, logger)
			if err != nil {
				return err
			}
			searcher := metasearch.NewAggregator(providerList, logger)

			bottle := bottleFlag
			if bottle == "" {
				bottle = cfg.CrossOver.DefaultBottle
			}
			session := batch.NewSession(candidates, bottle, keywords.Extract, searcher, logger)

			excluded := make(map[string]struct{}, len(excludeFlag))
			for _, name := range excludeFlag {
				excluded[name] = struct{}{}
			}
			for index, item := range session.Items() {
				if _, skip := excluded[item.DirName]; skip {
					if err := session.SetSelected(index, false); err != nil {
						return err
					}
				}
			}

			fmt.Fprintf(out, "Found %d candidates under %s\n", session.Len(), root)
			if !skipMatchFlag {
				err := session.Match(cmd.Context(), func(index int, item batch.Item) {
					if item.Status == batch.StatusMatching {
						return
					}
					fmt.Fprintln(out, renderMatchLine(item, colorize))
				})
				if err != nil {
					return err
				}
			}

			if dryRunFlag {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderImportPreview(session.Items()))
				fmt.Fprintln(out, "Dry run, nothing committed.")
				return nil
			}

			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				created, err := session.Commit(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %d instances.\n", len(created))
				_ = notifications.NewService(cfg).NotifyImportCompleted(cmd.Context(), len(created))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bottleFlag, "bottle", "", "Bottle for imported instances (defaults to the configured default)")
	cmd.Flags().StringArrayVar(&excludeFlag, "exclude", nil, "Directory name to exclude (repeatable)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Match and preview without committing")
	cmd.Flags().BoolVar(&skipMatchFlag, "skip-match", false, "Import with directory names, no metadata lookup")
	return cmd
}

func renderImportPreview(items []batch.Item) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		name := item.DirName
		if item.Matched != nil {
			name = item.Matched.Title
		}
		exec := item.SelectedExec
		if exec == "" {
			exec = "(none)"
		}
		rows = append(rows, []string{
			yesNo(item.Selected),
			string(item.Status),
			truncate(name, 40),
			item.BottleName,
			truncate(exec, 50),
		})
	}
	return renderTable(
		[]string{"Sel", "Status", "Name", "Bottle", "Executable"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
