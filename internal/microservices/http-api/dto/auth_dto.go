package dto

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionResponse: the logged-in user, returned by login and /me
type SessionResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// MessageResponse: plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
