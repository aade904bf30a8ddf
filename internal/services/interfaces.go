package services

import (
	"time"

	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateEmail(userID uint, password, newEmail string) (*models.User, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	DeactivateAccount(userID uint, password string) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ClearRefreshTokenHash(userID uint) error
}

// HabitInput holds the full configuration for creating a habit.
type HabitInput struct {
	Name                 string
	Description          string
	Icon                 string
	Color                string
	Type                 models.HabitType
	GoalType             models.GoalType
	DailyGoal            int
	Unit                 string
	PointsPerCompletion  int
	MoneyTrackingEnabled bool
	CostPerUnit          int64
	Currency             string
	TaperingEnabled      bool
	TaperingStartDate    *time.Time
	TaperingEndDate      *time.Time
	TaperingStartValue   int
	TaperingTargetValue  int
	FixedDaysEnabled     bool
	FixedDaysTarget      int
}

// HabitUpdate holds optional field updates for a habit. Nil fields are left
// unchanged.
type HabitUpdate struct {
	Name                 *string
	Description          *string
	Icon                 *string
	Color                *string
	DailyGoal            *int
	Unit                 *string
	PointsPerCompletion  *int
	MoneyTrackingEnabled *bool
	CostPerUnit          *int64
	Currency             *string
	TaperingEnabled      *bool
	TaperingStartDate    *time.Time
	TaperingEndDate      *time.Time
	TaperingStartValue   *int
	TaperingTargetValue  *int
}

// HabitFilter holds optional filter parameters for listing habits.
// A nil Archived lists active habits only; archived habits never appear in
// listings unless explicitly requested.
type HabitFilter struct {
	Type     *models.HabitType
	Archived *bool
	Search   string
}

// HabitServicer defines the contract for habit-related business logic.
type HabitServicer interface {
	CreateHabit(userID uint, input HabitInput) (*models.Habit, error)
	GetUserHabits(userID uint, page pagination.PageRequest, filter HabitFilter) (*pagination.PageResponse[models.Habit], error)
	GetHabitByID(userID, habitID uint) (*models.Habit, error)
	UpdateHabit(userID, habitID uint, update HabitUpdate) (*models.Habit, error)
	ArchiveHabit(userID, habitID uint) (*models.Habit, error)
	UnarchiveHabit(userID, habitID uint) (*models.Habit, error)
	DeleteHabit(userID, habitID uint) error
	ExtendFixedDays(userID, habitID uint, additionalDays int) (*models.Habit, error)
	GetTaperingHistory(userID, habitID uint, page pagination.PageRequest) (*pagination.PageResponse[models.TaperingHistory], error)
}

// LogFilter holds optional filter parameters for listing habit logs.
type LogFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// LogServicer defines the contract for habit log business logic. CreateLog is
// the operation of record; streak, points, money, fixed-days, and
// tapering-history updates run as best-effort follow-ups whose failures are
// logged but never surfaced.
type LogServicer interface {
	CreateLog(userID, habitID uint, count int, note string) (*models.HabitLog, error)
	GetHabitLogs(userID, habitID uint, page pagination.PageRequest, filter LogFilter) (*pagination.PageResponse[models.HabitLog], error)
	DeleteLog(userID, logID uint) error
}

// StreakServicer defines the contract for streak bookkeeping.
type StreakServicer interface {
	// GetHabitStreak returns the habit's streak row, creating a zeroed row on
	// first access.
	GetHabitStreak(userID, habitID uint) (*models.Streak, error)
	// RecordDayResult applies one day's goal outcome to the habit's streak.
	// The boolean result reports whether this call counted a day that had not
	// been counted before.
	RecordDayResult(habit *models.Habit, day time.Time, met bool) (*models.Streak, bool, error)
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TotalPoints int64  `json:"total_points"`
}

// PointsServicer defines the contract for user point accumulation.
type PointsServicer interface {
	// AddPoints atomically adds points to the user's running total, creating
	// the row if absent.
	AddPoints(userID uint, points int64) error
	GetTotalPoints(userID uint) (int64, error)
	GetLeaderboard(limit int) ([]LeaderboardEntry, error)
}

// MoneyServicer defines the contract for money-saving aggregation.
type MoneyServicer interface {
	// RecordSaving upserts the amount saved for a habit on a day. At most one
	// row exists per (habit, date).
	RecordSaving(habit *models.Habit, day time.Time, amount int64) error
	GetHabitSavings(userID, habitID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MoneySaving], error)
	GetSavingForDay(userID, habitID uint, day time.Time) (int64, error)
	GetTotalSaved(userID, habitID uint) (int64, error)
}

// JournalInput holds the fields for creating a journal entry.
type JournalInput struct {
	HabitID   uint
	Date      *time.Time
	Content   string
	Mood      models.Mood
	Triggers  []string
	UrgeLevel *int
}

// JournalUpdate holds optional field updates for a journal entry.
type JournalUpdate struct {
	Content   *string
	Mood      *models.Mood
	Triggers  []string
	UrgeLevel *int
}

// JournalFilter holds optional filter parameters for listing journal entries.
type JournalFilter struct {
	HabitID  *uint
	FromDate *time.Time
	ToDate   *time.Time
	Mood     *models.Mood
	Search   string
}

// JournalServicer defines the contract for journal entry CRUD.
type JournalServicer interface {
	CreateEntry(userID uint, input JournalInput) (*models.JournalEntry, error)
	GetEntries(userID uint, page pagination.PageRequest, filter JournalFilter) (*pagination.PageResponse[models.JournalEntry], error)
	GetEntryByID(userID, entryID uint) (*models.JournalEntry, error)
	UpdateEntry(userID, entryID uint, update JournalUpdate) (*models.JournalEntry, error)
	DeleteEntry(userID, entryID uint) error
}

// HabitWithProgress pairs a habit with its derived progress view for a day.
type HabitWithProgress struct {
	Habit    models.Habit           `json:"habit"`
	Progress progress.HabitProgress `json:"progress"`
}

// ProgressServicer defines the contract for composed progress views. Views
// are recomputed in full on every read from the stored facts and never
// persisted.
type ProgressServicer interface {
	GetHabitProgress(userID, habitID uint, day time.Time) (*HabitWithProgress, error)
	GetDashboard(userID uint, day time.Time) ([]HabitWithProgress, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
