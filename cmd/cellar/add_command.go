package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
	"cellar/internal/config"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var bottleFlag string
	var infoFlag string
	var coverFlag string

	cmd := &cobra.Command{
		Use:   "add <executable>",
		Short: "Add one instance to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			execPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			name := strings.TrimSpace(nameFlag)
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(execPath), filepath.Ext(execPath))
			}
			bottle := strings.TrimSpace(bottleFlag)
			if bottle == "" {
				bottle = cfg.CrossOver.DefaultBottle
			}

			inst := catalog.Instance{
				ID:              catalog.NewID(),
				Name:            name,
				Info:            strings.TrimSpace(infoFlag),
				BottleName:      bottle,
				ExecutablePath:  execPath,
				BackgroundImage: strings.TrimSpace(coverFlag),
			}

			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				if err := store.Append(cmd.Context(), []catalog.Instance{inst}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", inst.Name, shortID(inst.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Display name (defaults to the executable base name)")
	cmd.Flags().StringVar(&bottleFlag, "bottle", "", "CrossOver bottle (defaults to the configured default)")
	cmd.Flags().StringVar(&infoFlag, "info", "", "Free-form notes")
	cmd.Flags().StringVar(&coverFlag, "cover", "", "Background image reference")
	return cmd
}
