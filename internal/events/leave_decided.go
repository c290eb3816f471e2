package events

import "time"

const LeaveDecidedTopic = "worksuite.leave.decided.v1"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	LeaveType  string    `json:"leave_type"`
	Status     string    `json:"status"`
	ReviewedBy string    `json:"reviewed_by"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
