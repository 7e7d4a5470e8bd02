package borrowers

// CreateBorrowerPayload represents the create request body.
type CreateBorrowerPayload struct {
	Name  string `json:"name" mod:"trim" validate:"required,max=255"`
	Phone string `json:"phone" mod:"trim" validate:"phone,max=32"`
}

// UpdateBorrowerPayload represents the replace request body.
type UpdateBorrowerPayload struct {
	Name  string `json:"name" mod:"trim" validate:"required,max=255"`
	Phone string `json:"phone" mod:"trim" validate:"phone,max=32"`
}
