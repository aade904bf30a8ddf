package models

import "time"

// TaperingHistory is an append-only record of the effective daily goal
// computed for a tapering habit, one row per (habit, date) at most. Used for
// charting the taper curve against actual consumption.
type TaperingHistory struct {
	Base
	HabitID uint      `gorm:"not null;uniqueIndex:idx_tapering_history_habit_date" json:"habit_id"`
	Date    time.Time `gorm:"not null;uniqueIndex:idx_tapering_history_habit_date" json:"date"`
	Value   int       `gorm:"not null" json:"value"`
}
