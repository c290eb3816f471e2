package employee

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,min=2,max=255"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"omitempty,max=50"`
	UserID       *string `json:"user_id" binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Position     string  `json:"position" binding:"omitempty,max=120"`
	HireDate     *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Position     *string `json:"position" binding:"omitempty,max=120"`
	HireDate     *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	IsActive     *bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	UserID       *string `json:"user_id,omitempty"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Position     string  `json:"position,omitempty"`
	HireDate     *string `json:"hire_date,omitempty"`
	IsActive     bool    `json:"is_active"`
}
