package models

import "time"

// Mood captures how the user felt when writing a journal entry.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
	MoodAwful   Mood = "awful"
)

// Valid reports whether m is one of the known mood values.
func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodAwful:
		return true
	}
	return false
}

// JournalEntry is a free-text reflection tied to a habit and a calendar day,
// with optional mood, trigger tags, and an urge level from 0 to 10.
type JournalEntry struct {
	Base
	HabitID   uint      `gorm:"not null;index" json:"habit_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      Mood      `json:"mood,omitempty"`
	Triggers  []string  `gorm:"serializer:json" json:"triggers,omitempty"`
	UrgeLevel *int      `json:"urge_level,omitempty"`
}
