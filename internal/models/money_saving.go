package models

import "time"

// MoneySaving records the amount saved for a habit on a single calendar day.
// At most one row exists per (habit, date) pair; recomputations on the same
// day update the existing row. AmountSaved is in the currency's minor unit.
type MoneySaving struct {
	Base
	HabitID     uint      `gorm:"not null;uniqueIndex:idx_money_savings_habit_date" json:"habit_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_money_savings_habit_date" json:"date"`
	AmountSaved int64     `gorm:"not null" json:"amount_saved"`
}
