package admins

// UpdateAdminPayload represents the replace request body. There is no create
// payload; signup is the only way to register an administrator.
type UpdateAdminPayload struct {
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
