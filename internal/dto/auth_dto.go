package dto

// RegisterRequest describes the payload for creating a new account.
type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=64"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
	Category string `form:"category" json:"category" validate:"required,oneof=teacher student"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Username string `json:"username"`
	Category string `json:"category"`
}

// LoginRequest describes the credentials payload.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	Token    string `json:"token"`
	Category string `json:"category"`
}
