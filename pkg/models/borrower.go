package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Borrower struct {
	bun.BaseModel `bun:"table:borrowers,alias:bw"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Phone     string    `json:"phone"`
}
