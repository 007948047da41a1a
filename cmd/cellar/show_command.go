package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one instance in full, including play history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				inst, err := resolveInstance(store, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				fmt.Fprintf(out, "ID:          %s\n", inst.ID)
				fmt.Fprintf(out, "Name:        %s\n", inst.Name)
				if inst.Info != "" {
					fmt.Fprintf(out, "Info:        %s\n", inst.Info)
				}
				fmt.Fprintf(out, "Bottle:      %s\n", inst.BottleName)
				fmt.Fprintf(out, "Executable:  %s\n", inst.ExecutablePath)
				if inst.BackgroundImage != "" {
					fmt.Fprintf(out, "Cover:       %s\n", inst.BackgroundImage)
				}
				fmt.Fprintf(out, "Last played: %s\n", formatLastPlayed(inst.LastPlayed))
				fmt.Fprintf(out, "Playtime:    %s\n", formatPlaytime(inst.TotalPlayTime))

				if len(inst.PlayHistory) > 0 {
					days := make([]string, 0, len(inst.PlayHistory))
					for day := range inst.PlayHistory {
						days = append(days, day)
					}
					sort.Sort(sort.Reverse(sort.StringSlice(days)))

					rows := make([][]string, 0, len(days))
					for _, day := range days {
						rows = append(rows, []string{day, formatPlaytime(inst.PlayHistory[day])})
					}
					fmt.Fprintln(out)
					fmt.Fprintln(out, renderTable(
						[]string{"Day", "Played"},
						rows,
						[]columnAlignment{alignLeft, alignRight},
					))
				}
				return nil
			})
		},
	}
}
