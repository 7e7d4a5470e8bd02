package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Borrowing is one lending event joining a book and a borrower. The same
// book/borrower pair may recur; there is no uniqueness constraint and no
// return date, so a row records that a loan happened, not that it is open.
type Borrowing struct {
	bun.BaseModel `bun:"table:borrowings,alias:bwg"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	BookID     *int      `json:"book_id"`
	BorrowerID *int      `json:"borrower_id"`

	// Relations
	Book     *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Borrower *Borrower `bun:"rel:belongs-to,join:borrower_id=id" json:"borrower,omitempty"`
}
