package models

import "time"

// HabitType distinguishes behaviors being built up from behaviors being
// reduced.
type HabitType string

const (
	HabitTypePositive HabitType = "positive"
	HabitTypeNegative HabitType = "negative"
)

// GoalType is the direction of a habit's daily goal: a minimum to reach
// ("do at least N") or a maximum not to exceed ("do at most N").
type GoalType string

const (
	GoalTypeMin GoalType = "min"
	GoalTypeMax GoalType = "max"
)

// Habit represents a tracked behavior with a daily numeric goal and a set of
// independently toggled feature flags (money tracking, tapering, fixed-days).
type Habit struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Type        HabitType `gorm:"not null" json:"type"`
	GoalType    GoalType  `gorm:"not null" json:"goal_type"`
	DailyGoal   int       `gorm:"not null" json:"daily_goal"`
	Unit        string    `json:"unit"`

	// Points awarded per completed unit when a log is created.
	PointsPerCompletion int `gorm:"default:10" json:"points_per_completion"`

	// Money tracking. CostPerUnit is in the currency's minor unit (cents).
	MoneyTrackingEnabled bool   `gorm:"default:false" json:"money_tracking_enabled"`
	CostPerUnit          int64  `json:"cost_per_unit"`
	Currency             string `gorm:"size:3" json:"currency"`

	// Tapering: a linear schedule reducing the effective daily limit of a
	// negative/max habit from StartValue down to TargetValue.
	TaperingEnabled     bool       `gorm:"default:false" json:"tapering_enabled"`
	TaperingStartDate   *time.Time `json:"tapering_start_date,omitempty"`
	TaperingEndDate     *time.Time `json:"tapering_end_date,omitempty"`
	TaperingStartValue  int        `json:"tapering_start_value"`
	TaperingTargetValue int        `json:"tapering_target_value"`

	// Fixed-days tracking: the habit is tracked for a bounded number of
	// qualifying days instead of indefinitely.
	FixedDaysEnabled   bool       `gorm:"default:false" json:"fixed_days_enabled"`
	FixedDaysTarget    int        `json:"fixed_days_target"`
	FixedDaysStartDate *time.Time `json:"fixed_days_start_date,omitempty"`
	FixedDaysProgress  int        `gorm:"default:0" json:"fixed_days_progress"`

	Archived   bool       `gorm:"default:false;index" json:"archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	Logs    []HabitLog    `gorm:"foreignKey:HabitID" json:"logs,omitempty"`
	Streak  *Streak       `gorm:"foreignKey:HabitID" json:"streak,omitempty"`
	Savings []MoneySaving `gorm:"foreignKey:HabitID" json:"savings,omitempty"`
}

// TaperingApplicable reports whether this habit can carry a tapering
// schedule. Tapering only makes sense when reducing a maximum limit.
func (h *Habit) TaperingApplicable() bool {
	return h.Type == HabitTypeNegative && h.GoalType == GoalTypeMax
}
