package events

import "time"

const TaskAssignedTopic = "worksuite.task.assigned.v1"

type TaskAssignedEvent struct {
	EventType  string    `json:"event_type"`
	TaskID     string    `json:"task_id"`
	ProjectID  string    `json:"project_id"`
	AssigneeID string    `json:"assignee_id"`
	AssignedBy string    `json:"assigned_by"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
