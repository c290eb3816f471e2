package auth

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	ProfileComplete bool    `json:"profile_complete"`
	Role            *string `json:"role,omitempty"`
	FullName        *string `json:"full_name,omitempty"`
}
