package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for task dates and streak dates.
const DateLayout = "2006-01-02"

type Category string

const (
	CategoryStudy    Category = "Study"
	CategoryFitness  Category = "Fitness"
	CategoryBusiness Category = "Business"
	CategoryPersonal Category = "Personal"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryStudy, CategoryFitness, CategoryBusiness, CategoryPersonal}

// DefaultCategory is preselected for new tasks.
const DefaultCategory Category = CategoryPersonal

func (c Category) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryFitness, CategoryBusiness, CategoryPersonal:
		return true
	default:
		return false
	}
}

// ParseCategory accepts any casing plus a few short aliases.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "study", "learn":
		return CategoryStudy, nil
	case "fitness", "fit", "gym":
		return CategoryFitness, nil
	case "business", "work", "biz":
		return CategoryBusiness, nil
	case "personal", "home":
		return CategoryPersonal, nil
	default:
		return "", fmt.Errorf("invalid category: %q", input)
	}
}

type Task struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Category        Category  `json:"type" yaml:"type"`
	DurationMinutes int       `json:"duration" yaml:"duration"`
	Completed       bool      `json:"completed" yaml:"completed"`
	Date            string    `json:"date" yaml:"date"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
}

// DurationOptions are the preset durations offered when adding a task.
var DurationOptions = []int{15, 30, 45, 60, 90, 120}
