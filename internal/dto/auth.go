package dto

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=250"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RequestEmailRequest asks for the confirmation email to be re-sent.
type RequestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// MessageResponse wraps informational responses.
type MessageResponse struct {
	Message string `json:"message"`
}
