package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dailyroutine/internal/model"
)

// Daily Routine theme (CLI + TUI).

const (
	IconSun     = "☀️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconFlame   = "🔥"
	IconInfo    = "ℹ️"
	IconError   = "🧨"
	IconUndo    = "↩️"
	IconQuote   = "💬"
	IconTrash   = "🗑️"
	IconGear    = "⚙️"
	IconChart   = "📊"
	IconLock    = "🔒"
)

var (
	cPrimary = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	cAccent  = lipgloss.AdaptiveColor{Light: "#C026D3", Dark: "#E879F9"}
	cGood    = lipgloss.Color("42")
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.AdaptiveColor{Light: "240", Dark: "244"}
	cGold    = lipgloss.Color("220")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Done  = lipgloss.NewStyle().Strikethrough(true).Foreground(cMuted)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("LEVEL DOWN")
)

var categoryColors = map[model.Category]lipgloss.Color{
	model.CategoryStudy:    lipgloss.Color("#8B5CF6"),
	model.CategoryFitness:  lipgloss.Color("#10B981"),
	model.CategoryBusiness: lipgloss.Color("#3B82F6"),
	model.CategoryPersonal: lipgloss.Color("#F59E0B"),
}

var categoryIcons = map[model.Category]string{
	model.CategoryStudy:    "📚",
	model.CategoryFitness:  "💪",
	model.CategoryBusiness: "💼",
	model.CategoryPersonal: "🏠",
}

var badgeEmoji = map[string]string{
	"flame":          "🔥",
	"trophy":         "🏆",
	"crown":          "👑",
	"checkmark-done": "✅",
	"star":           "⭐",
	"trending-up":    "📈",
	"diamond":        "💎",
	"medal":          "🏅",
}

// ApplySettings switches the adaptive palette to match the stored dark mode.
func ApplySettings(s model.Settings) {
	lipgloss.SetHasDarkBackground(s.DarkMode)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryTag renders a category as a colored icon and name.
func CategoryTag(c model.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		return Muted.Render(string(c))
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(categoryIcons[c] + " " + string(c))
}

// BadgeEmoji maps a badge icon name to its emoji, falling back to a medal.
func BadgeEmoji(icon string) string {
	if e, ok := badgeEmoji[icon]; ok {
		return e
	}
	return badgeEmoji["medal"]
}

func Checkbox(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// ProgressBar renders value/total as a fixed-width bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func Minutes(d int) string {
	if d >= 60 && d%60 == 0 {
		return fmt.Sprintf("%dh", d/60)
	}
	if d > 60 {
		return fmt.Sprintf("%dh%02dm", d/60, d%60)
	}
	return fmt.Sprintf("%dm", d)
}
