package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
)

// pointsService handles user point accumulation and the leaderboard.
type pointsService struct {
	db *gorm.DB
}

// NewPointsService creates a new PointsServicer.
func NewPointsService(db *gorm.DB) PointsServicer {
	return &pointsService{db: db}
}

// AddPoints adds points to the user's running total with a server-side
// atomic increment, creating the row when absent. Concurrent log creations
// by the same user therefore cannot lose updates.
func (s *pointsService) AddPoints(userID uint, points int64) error {
	if points <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "points must be positive")
	}

	row := &models.UserPoints{UserID: userID, TotalPoints: points}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points": gorm.Expr("total_points + ?", points),
		}),
	}).Create(row).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTotalPoints returns the user's current point total. Users with no
// points row yet have a total of zero.
func (s *pointsService) GetTotalPoints(userID uint) (int64, error) {
	var row models.UserPoints
	if err := s.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.TotalPoints, nil
}

// GetLeaderboard returns the top users by point total.
func (s *pointsService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var entries []LeaderboardEntry
	err := s.db.Model(&models.UserPoints{}).
		Select("user_points.user_id, users.first_name, users.last_name, user_points.total_points").
		Joins("JOIN users ON users.id = user_points.user_id AND users.deleted_at IS NULL").
		Where("users.is_active = ?", true).
		Order("user_points.total_points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return entries, nil
}
