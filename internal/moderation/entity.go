// AngelaMos | 2026
// entity.go

package moderation

import (
	"time"
)

// Ad is a marketplace advertisement shown to customers while active.
type Ad struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Job is a vacancy posting. An approved job is an active one.
type Job struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Company     string    `db:"company"`
	Location    string    `db:"location"`
	Salary      string    `db:"salary"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
