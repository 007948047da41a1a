package sessions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cellar/internal/catalog"
	"cellar/internal/logging"
)

// Event reports one finished play session. Zero or more events may arrive
// per launch, in no particular order across instances, and duplicates are
// possible.
type Event struct {
	InstanceID string `json:"instanceId"`
	Seconds    int64  `json:"durationSeconds"`
}

// Recorder appends sessions to a durable journal. Journaling is best-effort
// from the handler's perspective.
type Recorder interface {
	Record(ctx context.Context, instanceID, dayKey string, seconds int64) error
}

// Handler merges incoming session events into the catalogue store. Every
// merge runs against the store's state at the moment the event is applied,
// so a concurrent edit of the same instance's other fields survives.
type Handler struct {
	store    *catalog.Store
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler builds a session handler. recorder may be nil to disable
// journaling.
func NewHandler(store *catalog.Store, recorder Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "sessions"),
		now:      time.Now,
	}
}

// Run consumes events until the channel closes or the context ends. The
// handler never pushes back on the event source; each event is applied and
// any failure is logged, not returned.
func (h *Handler) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			h.Apply(ctx, event)
		}
	}
}

// Apply merges one event. Unknown instances, zero and negative durations
// are tolerated silently: the first is a benign race with deletion, the
// others carry nothing to merge.
func (h *Handler) Apply(ctx context.Context, event Event) {
	if event.Seconds <= 0 || event.InstanceID == "" {
		return
	}
	dayKey := catalog.DayKey(h.now())

	err := h.store.Apply(ctx, event.InstanceID, func(inst *catalog.Instance) {
		inst.RecordSession(dayKey, event.Seconds)
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.logger.Debug("session event for unknown instance dropped",
				logging.String(logging.FieldInstanceID, event.InstanceID))
			return
		}
		// A persistence failure: the merge is already in memory.
		h.logger.Warn("session merge persisted with error",
			logging.String(logging.FieldInstanceID, event.InstanceID),
			logging.Error(err))
	}

	if h.recorder != nil {
		if err := h.recorder.Record(ctx, event.InstanceID, dayKey, event.Seconds); err != nil {
			h.logger.Warn("session journal append failed",
				logging.String(logging.FieldInstanceID, event.InstanceID),
				logging.Error(err))
		}
	}

	h.logger.Info("play session recorded",
		logging.String(logging.FieldInstanceID, event.InstanceID),
		logging.Int64("seconds", event.Seconds),
		logging.String("day", dayKey))
}
