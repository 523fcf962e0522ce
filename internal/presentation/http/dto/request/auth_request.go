package request

// RegisterRequest represents a registration request. Registering creates
// the business together with its owner account.
type RegisterRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=2,max=255"`
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
