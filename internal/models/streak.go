package models

import "time"

// Streak holds per-habit streak bookkeeping. One row per habit, created
// lazily on first access. LastSuccessfulDay is the most recent calendar day
// on which the habit's goal was met; a nil value means the goal has never
// been met.
type Streak struct {
	Base
	HabitID           uint       `gorm:"not null;uniqueIndex" json:"habit_id"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	CurrentStreak     int        `gorm:"default:0" json:"current_streak"`
	LongestStreak     int        `gorm:"default:0" json:"longest_streak"`
	LastSuccessfulDay *time.Time `json:"last_successful_day,omitempty"`
}
