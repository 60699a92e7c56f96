package api

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Token string `json:"token"` // for non-cookie clients, also set as accessToken cookie
}
