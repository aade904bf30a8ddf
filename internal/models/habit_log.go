package models

import "time"

// HabitLog is a single occurrence record for a habit. Date is the calendar
// day the log belongs to, derived from the creation moment on the server and
// never supplied by the client, so every log created "today" aggregates under
// the same date.
type HabitLog struct {
	Base
	HabitID      uint      `gorm:"not null;index" json:"habit_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	Count        int       `gorm:"not null" json:"count"`
	Note         string    `json:"note"`
	PointsEarned int       `gorm:"not null" json:"points_earned"`

	Habit Habit `gorm:"foreignKey:HabitID" json:"-"`
}
