package client

type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	Address      string `json:"address"`
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	IsActive     *bool   `json:"is_active"`
}

type CompanyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	IsActive     bool   `json:"is_active"`
}
