package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated       = "employee_created"
	EmployeeStatusChanged = "employee_status_changed"
)

type EmployeeLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
