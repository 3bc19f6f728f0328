package engine

import (
	"fmt"
	"time"

	"dailyroutine/internal/model"
)

// Requirement is the condition a badge definition tests against the stats.
// The set of implementations is closed: StreakLength, TasksCompleted and
// LevelReached.
type Requirement interface {
	Threshold() int
	fmt.Stringer
	requirement()
}

// StreakLength is met when the current streak reaches N days.
type StreakLength struct{ N int }

// TasksCompleted is met when the lifetime completion count reaches N.
type TasksCompleted struct{ N int }

// LevelReached is met when the level reaches N.
type LevelReached struct{ N int }

func (r StreakLength) Threshold() int   { return r.N }
func (r TasksCompleted) Threshold() int { return r.N }
func (r LevelReached) Threshold() int   { return r.N }

func (r StreakLength) String() string   { return fmt.Sprintf("streak >= %d", r.N) }
func (r TasksCompleted) String() string { return fmt.Sprintf("tasks >= %d", r.N) }
func (r LevelReached) String() string   { return fmt.Sprintf("level >= %d", r.N) }

func (StreakLength) requirement()   {}
func (TasksCompleted) requirement() {}
func (LevelReached) requirement()   {}

// BadgeDefinition describes an earnable badge.
type BadgeDefinition struct {
	ID          string
	Name        string
	Description string
	Requirement Requirement
}

var badgeDefinitions = []BadgeDefinition{
	{ID: "streak-7", Name: "Week Warrior", Description: "7-day streak", Requirement: StreakLength{N: 7}},
	{ID: "streak-30", Name: "Monthly Master", Description: "30-day streak", Requirement: StreakLength{N: 30}},
	{ID: "streak-100", Name: "Century Champion", Description: "100-day streak", Requirement: StreakLength{N: 100}},
	{ID: "tasks-50", Name: "Task Tackler", Description: "Complete 50 tasks", Requirement: TasksCompleted{N: 50}},
	{ID: "tasks-100", Name: "Century Tasks", Description: "Complete 100 tasks", Requirement: TasksCompleted{N: 100}},
	{ID: "level-10", Name: "Rising Star", Description: "Reach Level 10", Requirement: LevelReached{N: 10}},
	{ID: "level-50", Name: "Halfway Hero", Description: "Reach Level 50", Requirement: LevelReached{N: 50}},
}

// DefaultBadgeIcon is used for any badge without an entry in badgeIcons.
const DefaultBadgeIcon = "medal"

var badgeIcons = map[string]string{
	"streak-7":   "flame",
	"streak-30":  "trophy",
	"streak-100": "crown",
	"tasks-50":   "checkmark-done",
	"tasks-100":  "star",
	"level-10":   "trending-up",
	"level-50":   "diamond",
}

// BadgeDefinitions returns a copy of the static badge table.
func BadgeDefinitions() []BadgeDefinition {
	out := make([]BadgeDefinition, len(badgeDefinitions))
	copy(out, badgeDefinitions)
	return out
}

// BadgeIcon resolves the icon name for a badge id.
func BadgeIcon(id string) string {
	if icon, ok := badgeIcons[id]; ok {
		return icon
	}
	return DefaultBadgeIcon
}

// RequirementMet tests a requirement against stats.
func RequirementMet(req Requirement, stats model.UserStats) bool {
	switch r := req.(type) {
	case StreakLength:
		return stats.StreakDays >= r.N
	case TasksCompleted:
		return stats.TotalTasksCompleted >= r.N
	case LevelReached:
		return stats.Level >= r.N
	default:
		panic(fmt.Sprintf("unhandled badge requirement %T", req))
	}
}

// EvaluateBadges returns the earned badges followed by any definitions that
// now qualify. Badges are never removed.
func EvaluateBadges(stats model.UserStats, now time.Time) []model.Badge {
	out := make([]model.Badge, len(stats.Badges), len(stats.Badges)+len(badgeDefinitions))
	copy(out, stats.Badges)

	earned := make(map[string]bool, len(stats.Badges))
	for _, b := range stats.Badges {
		earned[b.ID] = true
	}

	for _, def := range badgeDefinitions {
		if earned[def.ID] {
			continue
		}
		if !RequirementMet(def.Requirement, stats) {
			continue
		}
		out = append(out, model.Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        BadgeIcon(def.ID),
			EarnedAt:    now,
		})
		earned[def.ID] = true
	}
	return out
}

// BadgeStatus pairs a definition with whether it has been earned.
type BadgeStatus struct {
	Definition BadgeDefinition
	Earned     *model.Badge
}

// BadgeBoard lists every definition with its earned record, if any.
func BadgeBoard(stats model.UserStats) []BadgeStatus {
	byID := make(map[string]model.Badge, len(stats.Badges))
	for _, b := range stats.Badges {
		byID[b.ID] = b
	}
	out := make([]BadgeStatus, 0, len(badgeDefinitions))
	for _, def := range badgeDefinitions {
		st := BadgeStatus{Definition: def}
		if b, ok := byID[def.ID]; ok {
			b := b
			st.Earned = &b
		}
		out = append(out, st)
	}
	return out
}
