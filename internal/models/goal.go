package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a user's stated financial objective for one month. At most one goal
// exists per (user, month); a new submission for the same pair replaces the
// previous one.
type Goal struct {
	ID              uuid.UUID `db:"id"`
	UserID          string    `db:"user_id"` // owning user's email
	GoalDescription string    `db:"goal_description"`
	Month           string    `db:"month"` // "YYYY-MM"
	CreatedAt       time.Time `db:"created_at"`
}
