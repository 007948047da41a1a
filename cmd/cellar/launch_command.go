package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellar/internal/catalog"
	"cellar/internal/journal"
	"cellar/internal/launch"
	"cellar/internal/notifications"
	"cellar/internal/sessions"
)

func newLaunchCommand(ctx *commandContext) *cobra.Command {
	var noWaitFlag bool

	cmd := &cobra.Command{
		Use:   "launch <id|name>",
		Short: "Launch an instance through CrossOver",
		Long: "Launch an instance through CrossOver. By default the command waits for\n" +
			"the game to exit and records the play session; --no-wait detaches\n" +
			"immediately and no playtime is recorded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			notify := notifications.NewService(cfg)

			return ctx.withStore(cmd.Context(), func(store *catalog.Store) error {
				inst, err := resolveInstance(store, args[0])
				if err != nil {
					return err
				}

				var events chan sessions.Event
				if !noWaitFlag {
					events = make(chan sessions.Event, 1)
				}
				coordinator := launch.NewCoordinator(store, &launch.WineRunner{}, cfg, events, logger)

				pid, err := coordinator.Launch(cmd.Context(), inst.ID)
				if err != nil {
					_ = notify.NotifyError(cmd.Context(), err, "launch")
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Launched %s (pid %d)\n", inst.Name, pid)
				_ = notify.NotifyLaunch(cmd.Context(), inst.Name, inst.BottleName)

				if noWaitFlag {
					return nil
				}

				recorder, err := journal.Open(cfg.Paths.DataDir)
				if err != nil {
					// Playtime still merges into the catalogue without the
					// journal.
					fmt.Fprintln(cmd.ErrOrStderr(), errorLine(fmt.Sprintf("session journal unavailable: %v", err), shouldColorize(cmd.ErrOrStderr())))
					recorder = nil
				}
				handler := sessions.NewHandler(store, journalRecorder(recorder), logger)

				var event sessions.Event
				select {
				case event = <-events:
				case <-cmd.Context().Done():
					if recorder != nil {
						_ = recorder.Close()
					}
					return cmd.Context().Err()
				}
				handler.Apply(cmd.Context(), event)
				if recorder != nil {
					_ = recorder.Close()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s exited after %s\n", inst.Name, formatPlaytime(event.Seconds))
				_ = notify.NotifySessionRecorded(cmd.Context(), inst.Name, event.Seconds)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noWaitFlag, "no-wait", false, "Detach after launching, skip playtime tracking")
	return cmd
}

// journalRecorder keeps the typed-nil pitfall out of the handler: a nil
// *journal.Store must become a nil interface.
func journalRecorder(store *journal.Store) sessions.Recorder {
	if store == nil {
		return nil
	}
	return store
}
