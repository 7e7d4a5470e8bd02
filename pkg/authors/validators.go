package authors

// CreateAuthorPayload represents the create request body.
type CreateAuthorPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,max=255"`
}

// UpdateAuthorPayload represents the replace request body. Updates are a full
// overwrite of mutable fields, not a partial patch.
type UpdateAuthorPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,max=255"`
}
