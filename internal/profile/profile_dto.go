package profile

type CompleteProfileRequest struct {
	FullName        string  `json:"full_name" binding:"required"`
	Role            string  `json:"role" binding:"required,oneof=admin hr team client"`
	Department      *string `json:"department"`
	Position        *string `json:"position"`
	Phone           *string `json:"phone"`
	ClientCompanyID *string `json:"client_company_id"`
}

type UpdateRoleRequest struct {
	Role            string  `json:"role" binding:"required,oneof=admin hr team client"`
	ClientCompanyID *string `json:"client_company_id"`
}

type ProfileResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	FullName        string  `json:"full_name"`
	Role            string  `json:"role"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	Department      *string `json:"department,omitempty"`
	Position        *string `json:"position,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ClientCompanyID *string `json:"client_company_id,omitempty"`
}
