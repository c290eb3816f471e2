package leave

type CreateLeaveRequest struct {
	// UserID is optional; admin/hr may file on behalf of another user,
	// everyone else files for themselves.
	UserID    string `json:"user_id" binding:"omitempty,uuid"`
	LeaveType string `json:"leave_type" binding:"required,oneof=annual sick unpaid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Days       int     `json:"days"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt *string `json:"reviewed_at,omitempty"`
}
