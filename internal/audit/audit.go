package audit

import (
	"context"
	"log/slog"

	"github.com/ErdhyErnando/moneta/internal/core/events"
)

// Recorder writes a structured audit line for every record mutation. It is
// the only subscriber on the event bus today; a persistent audit table could
// hang off the same events later.
type Recorder struct {
	logger *slog.Logger
}

func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Register subscribes the recorder to all record-change events.
func (r *Recorder) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeRecordCreated, r.handle)
	bus.Subscribe(events.EventTypeRecordUpdated, r.handle)
	bus.Subscribe(events.EventTypeRecordDeleted, r.handle)
}

func (r *Recorder) handle(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.RecordChangedEvent)
	if !ok {
		r.logger.Warn("audit: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	r.logger.Info("audit",
		"event", e.EventType(),
		"event_id", e.EventID(),
		"record_id", e.RecordID,
		"record_kind", e.RecordKind,
		"user_id", e.UserID,
		"amount", e.Amount,
		"occurred_at", e.OccurredAt())
	return nil
}
