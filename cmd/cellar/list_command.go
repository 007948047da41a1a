package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalogue instances, most recently played first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				items := store.List()
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalogue is empty. Use `cellar add` or `cellar import`.")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						shortID(item.ID),
						truncate(item.Name, 40),
						item.BottleName,
						formatLastPlayed(item.LastPlayed),
						formatPlaytime(item.TotalPlayTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Bottle", "Last Played", "Playtime"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
