package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/bottles"
)

func newBottlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bottles",
		Short: "List the available CrossOver bottles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			names, err := bottles.List(cfg.CrossOver.BottlesDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No bottles found under %s\n", cfg.CrossOver.BottlesDir)
				return nil
			}
			for _, name := range names {
				marker := " "
				if name == cfg.CrossOver.DefaultBottle {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}
