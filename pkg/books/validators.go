package books

// CreateBookPayload represents the create request body. The author reference
// is optional; if present it must be a plausible id. Existence is enforced by
// the storage layer's foreign key, not here.
type CreateBookPayload struct {
	Title    string `json:"title" mod:"trim" validate:"required,max=255"`
	AuthorID *int   `json:"author_id" validate:"omitempty,gt=0"`
}

// UpdateBookPayload represents the replace request body.
type UpdateBookPayload struct {
	Title    string `json:"title" mod:"trim" validate:"required,max=255"`
	AuthorID *int   `json:"author_id" validate:"omitempty,gt=0"`
}
