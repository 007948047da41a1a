package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var yesFlag bool

	cmd := &cobra.Command{
		Use:     "remove <id|name>",
		Aliases: []string{"rm"},
		Short:   "Remove one instance from the catalogue",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				inst, err := resolveInstance(store, args[0])
				if err != nil {
					return err
				}
				if !yesFlag {
					return fmt.Errorf("refusing to remove %q without --yes", inst.Name)
				}
				if err := store.Remove(cmd.Context(), inst.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", inst.Name, shortID(inst.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Confirm removal")
	return cmd
}
