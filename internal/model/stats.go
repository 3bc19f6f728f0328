package model

import "time"

type Badge struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Icon        string    `json:"icon" yaml:"icon"`
	EarnedAt    time.Time `json:"earnedAt" yaml:"earnedAt"`
}

// UserStats is the per-installation progression record.
type UserStats struct {
	XP                  int              `json:"xp" yaml:"xp"`
	Level               int              `json:"level" yaml:"level"`
	StreakDays          int              `json:"streakDays" yaml:"streakDays"`
	LastCompletedDate   *string          `json:"lastCompletedDate" yaml:"lastCompletedDate"`
	TotalTasksCompleted int              `json:"totalTasksCompleted" yaml:"totalTasksCompleted"`
	CategoryStats       map[Category]int `json:"categoryStats" yaml:"categoryStats"`
	Badges              []Badge          `json:"badges" yaml:"badges"`
}

// DefaultUserStats returns the first-launch stats.
func DefaultUserStats() UserStats {
	return UserStats{
		XP:            0,
		Level:         1,
		CategoryStats: defaultCategoryStats(),
		Badges:        []Badge{},
	}
}

func defaultCategoryStats() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = 0
	}
	return out
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s UserStats) Clone() UserStats {
	out := s
	if s.LastCompletedDate != nil {
		v := *s.LastCompletedDate
		out.LastCompletedDate = &v
	}
	out.CategoryStats = make(map[Category]int, len(Categories))
	for k, v := range s.CategoryStats {
		out.CategoryStats[k] = v
	}
	for _, c := range Categories {
		if _, ok := out.CategoryStats[c]; !ok {
			out.CategoryStats[c] = 0
		}
	}
	out.Badges = make([]Badge, len(s.Badges))
	copy(out.Badges, s.Badges)
	return out
}

// HasBadge reports whether a badge with the given id was already earned.
func (s UserStats) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
