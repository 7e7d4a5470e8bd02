package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `bun:",nullzero" json:"title"`
	AuthorID  *int      `json:"author_id"`

	// Relations
	Author *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
