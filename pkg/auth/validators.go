package auth

// SignupPayload represents the signup request body.
type SignupPayload struct {
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload represents the login request body.
type LoginPayload struct {
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshPayload represents the refresh request body.
type RefreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SignupResponse echoes the registered email along with both tokens. Login
// intentionally returns only the token pair.
type SignupResponse struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
