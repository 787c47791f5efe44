package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the hex color assigned to categories created
// implicitly while recording a transaction.
const DefaultCategoryColor = "#007bff"

type Category struct {
	ID          uuid.UUID  `db:"id"`
	UserID      *uuid.UUID `db:"user_id"` // nil for global default categories
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Color       string     `db:"color"`
	Icon        string     `db:"icon"`
	IsDefault   bool       `db:"is_default"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
