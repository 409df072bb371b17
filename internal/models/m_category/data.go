package m_category

import (
	"time"
)

// Data represents the database model for the categories table.
type Data struct {
	CategoryID  string
	Name        string
	Description string
	ProductIDs  []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
