package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
	"cellar/internal/config"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var bottleFlag string
	var infoFlag string
	var coverFlag string
	var execFlag string

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit fields of one instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changedName := cmd.Flags().Changed("name")
			changedBottle := cmd.Flags().Changed("bottle")
			changedInfo := cmd.Flags().Changed("info")
			changedCover := cmd.Flags().Changed("cover")
			changedExec := cmd.Flags().Changed("exec")
			if !changedName && !changedBottle && !changedInfo && !changedCover && !changedExec {
				return fmt.Errorf("nothing to change, pass at least one field flag")
			}

			var execPath string
			if changedExec {
				expanded, err := config.ExpandPath(execFlag)
				if err != nil {
					return err
				}
				execPath = expanded
			}

			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				inst, err := resolveInstance(store, args[0])
				if err != nil {
					return err
				}
				err = store.Apply(cmd.Context(), inst.ID, func(i *catalog.Instance) {
					if changedName {
						i.Name = nameFlag
					}
					if changedBottle {
						i.BottleName = bottleFlag
					}
					if changedInfo {
						i.Info = infoFlag
					}
					if changedCover {
						i.BackgroundImage = coverFlag
					}
					if changedExec {
						i.ExecutablePath = execPath
					}
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", shortID(inst.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Display name")
	cmd.Flags().StringVar(&bottleFlag, "bottle", "", "CrossOver bottle")
	cmd.Flags().StringVar(&infoFlag, "info", "", "Free-form notes")
	cmd.Flags().StringVar(&coverFlag, "cover", "", "Background image reference")
	cmd.Flags().StringVar(&execFlag, "exec", "", "Executable path")
	return cmd
}
