package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/events"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka"

	"github.com/google/uuid"
)

// lifecycleEvent builds the payload published for a create or status change.
func lifecycleEvent(eventType, requestID string, empl Employee, previousStatus string) events.EmployeeLifecycleEvent {
	return events.EmployeeLifecycleEvent{
		EventType:      eventType,
		RequestID:      requestID,
		EmployeeID:     empl.ID.String(),
		EmployeeCode:   empl.EmployeeCode,
		PreviousStatus: previousStatus,
		Status:         empl.Status,
		OccurredAt:     time.Now().UTC(),
	}
}

// enqueueLifecycleEvent writes the event to the outbox inside tx. A nil
// outbox repository disables publishing.
func enqueueLifecycleEvent(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	tx *sql.Tx,
	event events.EmployeeLifecycleEvent,
) error {
	if outbox == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employee",
		AggregateID:   event.EmployeeID,
		EventType:     event.EventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
