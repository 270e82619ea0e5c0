package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRecordCreated = "record.created"
	EventTypeRecordUpdated = "record.updated"
	EventTypeRecordDeleted = "record.deleted"
)

// RecordChangedEvent is published after every record mutation (income,
// expense or starting balance) for the audit trail.
type RecordChangedEvent struct {
	BaseEvent
	RecordID   int64  `json:"record_id"`
	RecordKind string `json:"record_kind"`
	UserID     int64  `json:"user_id"`
	Amount     string `json:"amount"`
}

func newRecordEvent(eventType string, recordID int64, kind string, userID int64, amount string) *RecordChangedEvent {
	return &RecordChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"record_id":   recordID,
				"record_kind": kind,
				"user_id":     userID,
				"amount":      amount,
			},
		},
		RecordID:   recordID,
		RecordKind: kind,
		UserID:     userID,
		Amount:     amount,
	}
}

func NewRecordCreatedEvent(recordID int64, kind string, userID int64, amount string) *RecordChangedEvent {
	return newRecordEvent(EventTypeRecordCreated, recordID, kind, userID, amount)
}

func NewRecordUpdatedEvent(recordID int64, kind string, userID int64, amount string) *RecordChangedEvent {
	return newRecordEvent(EventTypeRecordUpdated, recordID, kind, userID, amount)
}

func NewRecordDeletedEvent(recordID int64, kind string, userID int64, amount string) *RecordChangedEvent {
	return newRecordEvent(EventTypeRecordDeleted, recordID, kind, userID, amount)
}
