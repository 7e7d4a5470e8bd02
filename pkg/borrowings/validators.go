package borrowings

// CreateBorrowingPayload represents the create request body. Both references
// are optional ids; existence is enforced by the storage layer's foreign
// keys.
type CreateBorrowingPayload struct {
	BookID     *int `json:"book_id" validate:"omitempty,gt=0"`
	BorrowerID *int `json:"borrower_id" validate:"omitempty,gt=0"`
}

// UpdateBorrowingPayload represents the replace request body.
type UpdateBorrowingPayload struct {
	BookID     *int `json:"book_id" validate:"omitempty,gt=0"`
	BorrowerID *int `json:"borrower_id" validate:"omitempty,gt=0"`
}

// ListBorrowingsQuery represents the optional list filters.
type ListBorrowingsQuery struct {
	BookID     *int `query:"book_id" validate:"omitempty,gt=0"`
	BorrowerID *int `query:"borrower_id" validate:"omitempty,gt=0"`
}
