package engine

import (
	"math"
	"time"

	"dailyroutine/internal/model"
)

// TodaysTasks filters tasks scheduled for today's calendar date.
func TodaysTasks(tasks []model.Task, today time.Time) []model.Task {
	day := today.Format(model.DateLayout)
	var out []model.Task
	for _, t := range tasks {
		if t.Date == day {
			out = append(out, t)
		}
	}
	return out
}

// CompletionRate is the rounded percentage of completed tasks, 0 when empty.
func CompletionRate(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// WeeklyProgress counts completed tasks per day from Monday of today's week
// through today, one entry per day.
func WeeklyProgress(tasks []model.Task, today time.Time) []int {
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)

	index := make(map[string]int, offset+1)
	out := make([]int, offset+1)
	for i := range out {
		index[start.AddDate(0, 0, i).Format(model.DateLayout)] = i
	}
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if i, ok := index[t.Date]; ok {
			out[i]++
		}
	}
	return out
}

// MostConsistentCategory returns the category with the highest completion
// count. Ties go to the earlier category; ok is false when nothing is done yet.
func MostConsistentCategory(stats model.UserStats) (model.Category, bool) {
	best := model.Category("")
	bestN := 0
	for _, c := range model.Categories {
		if n := stats.CategoryStats[c]; n > bestN {
			best, bestN = c, n
		}
	}
	return best, bestN > 0
}

type Quote struct {
	Text   string
	Author string
}

var dailyQuotes = []Quote{
	{Text: "Success is the sum of small efforts repeated daily.", Author: "Robert Collier"},
	{Text: "The secret of your future is hidden in your daily routine.", Author: "Mike Murdock"},
	{Text: "Discipline is the bridge between goals and accomplishment.", Author: "Jim Rohn"},
	{Text: "Small daily improvements lead to stunning results.", Author: "Robin Sharma"},
	{Text: "Your habits determine your future.", Author: "Jack Canfield"},
	{Text: "Excellence is not an act, but a habit.", Author: "Aristotle"},
	{Text: "The only bad workout is the one that didn't happen.", Author: "Unknown"},
	{Text: "Don't watch the clock; do what it does. Keep going.", Author: "Sam Levenson"},
}

// DailyQuote picks the quote for now's UTC day; it changes once per day.
func DailyQuote(now time.Time) Quote {
	i := int((now.Unix() / 86400) % int64(len(dailyQuotes)))
	if i < 0 {
		i += len(dailyQuotes)
	}
	return dailyQuotes[i]
}
