package launch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cellar/internal/catalog"
	"cellar/internal/config"
	"cellar/internal/logging"
	"cellar/internal/sessions"
)

// Coordinator launches catalogue instances and records the launch time.
type Coordinator struct {
	store  *catalog.Store
	runner Runner
	cfg    *config.Config
	events chan<- sessions.Event
	logger *slog.Logger
	now    func() time.Time
}

// NewCoordinator builds a launch coordinator. events may be nil when no
// session handler is attached; process exits are then only logged.
func NewCoordinator(store *catalog.Store, runner Runner, cfg *config.Config, events chan<- sessions.Event, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		runner: runner,
		cfg:    cfg,
		events: events,
		logger: logging.NewComponentLogger(logger, "launch"),
		now:    time.Now,
	}
}

// Launch starts the instance and returns the process id. On success
// lastPlayed is set to now and written through; on failure the catalogue is
// left untouched and the error is surfaced for user-facing reporting.
// Session completion is not awaited here; it arrives later through the
// event channel once the process exits.
func (c *Coordinator) Launch(ctx context.Context, instanceID string) (int, error) {
	inst, ok := c.store.Get(instanceID)
	if !ok {
		return 0, fmt.Errorf("launch %q: %w", instanceID, catalog.ErrNotFound)
	}

	bottle := inst.BottleName
	if bottle == "" {
		bottle = c.cfg.CrossOver.DefaultBottle
	}
	req := Request{
		Executable: inst.ExecutablePath,
		BottleName: bottle,
		BottlePath: c.cfg.BottlePath(bottle),
		WineBinary: c.cfg.WineBinary(),
		Locale:     c.cfg.CrossOver.Locale,
		WineDebug:  c.cfg.CrossOver.WineDebug,
	}

	proc, err := c.runner.Start(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("launch %q: %w", inst.Name, err)
	}
	startedAt := c.now()

	if err := c.store.Apply(ctx, instanceID, func(i *catalog.Instance) {
		i.LastPlayed = startedAt.UnixMilli()
	}); err != nil {
		// The process is already running; the timestamp write is best-effort.
		c.logger.Warn("launch timestamp write failed",
			logging.String(logging.FieldInstanceID, instanceID),
			logging.Error(err))
	}

	c.logger.Info("instance launched",
		logging.String(logging.FieldInstanceID, instanceID),
		logging.String(logging.FieldBottle, bottle),
		logging.Int("pid", proc.PID()))

	go c.awaitExit(instanceID, proc, startedAt)
	return proc.PID(), nil
}

// awaitExit blocks on the process and emits one session event with the
// elapsed wall-clock duration.
func (c *Coordinator) awaitExit(instanceID string, proc Process, startedAt time.Time) {
	if err := proc.Wait(); err != nil {
		c.logger.Warn("wait for instance process failed",
			logging.String(logging.FieldInstanceID, instanceID),
			logging.Error(err))
		return
	}
	seconds := int64(c.now().Sub(startedAt) / time.Second)
	c.logger.Info("instance exited",
		logging.String(logging.FieldInstanceID, instanceID),
		logging.Int64("seconds", seconds))
	if c.events != nil {
		c.events <- sessions.Event{InstanceID: instanceID, Seconds: seconds}
	}
}
