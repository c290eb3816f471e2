package task

type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required,min=3,max=255"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateStatusRequest struct {
	ExpectedStatus string `json:"expected_status" binding:"required,oneof=not_started in_progress review completed blocked"`
	Status         string `json:"status" binding:"required,oneof=not_started in_progress review completed blocked"`
}

type AssignTaskRequest struct {
	// AssigneeID null clears the assignment.
	AssigneeID *string `json:"assignee_id" binding:"omitempty,uuid"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedBy   string  `json:"created_by"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}
