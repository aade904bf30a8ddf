package models

// UserPoints holds a user's running point total. One row per user, updated
// with an atomic server-side increment so concurrent log creations cannot
// lose updates.
type UserPoints struct {
	Base
	UserID      uint  `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalPoints int64 `gorm:"default:0" json:"total_points"`
}
