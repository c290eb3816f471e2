package project

type CreateProjectRequest struct {
	Name            string  `json:"name" binding:"required,min=3,max=255"`
	Description     string  `json:"description"`
	ClientCompanyID *string `json:"client_company_id" binding:"omitempty,uuid"`
	StartDate       *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	Deadline        *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateProjectRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=3,max=255"`
	Description     *string `json:"description"`
	ClientCompanyID *string `json:"client_company_id" binding:"omitempty,uuid"`
	StartDate       *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	Deadline        *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateStatusRequest carries the status the caller last read alongside the
// target, so the write can be guarded against a concurrent edit.
type UpdateStatusRequest struct {
	ExpectedStatus string `json:"expected_status" binding:"required,oneof=not_started in_progress on_hold completed cancelled"`
	Status         string `json:"status" binding:"required,oneof=not_started in_progress on_hold completed cancelled"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type ProjectResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	ClientCompanyID *string  `json:"client_company_id,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	Deadline        *string  `json:"deadline,omitempty"`
	CreatedBy       string   `json:"created_by"`
	MemberIDs       []string `json:"member_ids,omitempty"`
}
