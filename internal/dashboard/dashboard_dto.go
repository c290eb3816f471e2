package dashboard

type ProjectSummary struct {
	Total      int64 `json:"total"`
	InProgress int64 `json:"in_progress"`
	OnHold     int64 `json:"on_hold"`
	Completed  int64 `json:"completed"`
}

type TaskSummary struct {
	Open    int64 `json:"open"`
	Blocked int64 `json:"blocked"`
}

type LeaveSummary struct {
	Pending int64 `json:"pending"`
}

type InvoiceSummary struct {
	Outstanding      int64 `json:"outstanding"`
	Overdue          int64 `json:"overdue"`
	OutstandingCents int64 `json:"outstanding_cents"`
}

// DashboardResponse carries only what the caller's scopes let them see;
// sections outside a role's visibility come back zeroed.
type DashboardResponse struct {
	Projects ProjectSummary `json:"projects"`
	Tasks    TaskSummary    `json:"tasks"`
	Leave    LeaveSummary   `json:"leave"`

	// Employees is present for admin/hr only.
	Employees *int64 `json:"employees,omitempty"`

	Invoices            InvoiceSummary `json:"invoices"`
	UnreadNotifications int64          `json:"unread_notifications"`
}
