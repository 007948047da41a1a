package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
	"cellar/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently journaled play sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.Paths.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}

			// Resolve instance names where the instance still exists.
			names := make(map[string]string)
			_ = ctx.withStore(cmd.Context(), func(catalogStore *catalog.Store) error {
				for _, inst := range catalogStore.List() {
					names[inst.ID] = inst.Name
				}
				return nil
			})

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				name := names[entry.InstanceID]
				if name == "" {
					name = shortID(entry.InstanceID)
				}
				rows = append(rows, []string{
					entry.DayKey,
					truncate(name, 40),
					formatPlaytime(entry.Seconds),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Day", "Instance", "Played"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum sessions to show")
	return cmd
}
