package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	stats    *model.UserStats
	settings model.Settings
	tasks    []model.Task

	showAll  bool
	selected int

	lastLog string
	loading bool
}

type loadedMsg struct {
	stats    model.UserStats
	settings model.Settings
	tasks    []model.Task
}

type toggledMsg struct {
	id  string
	res *engine.ToggleResult
	err error
}

type settingsMsg struct {
	settings model.Settings
	err      error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{
			stats:    m.svc.Stats(m.ctx),
			settings: m.svc.Settings(m.ctx),
			tasks:    m.svc.ListTasks(m.ctx),
		}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) focusCmd(on bool) tea.Cmd {
	return func() tea.Msg {
		s, err := m.svc.UpdateSettings(m.ctx, func(s *model.Settings) error {
			s.MorningFocusMode = on
			return nil
		})
		return settingsMsg{settings: s, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.stats = &msg.stats
		m.settings = msg.settings
		m.tasks = msg.tasks
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Task no longer exists."
			return m, m.loadCmd()
		}
		m.lastLog = toggleSummary(*msg.res)
		return m, m.loadCmd()
	case settingsMsg:
		if msg.err != nil {
			m.lastLog = "Settings failed: " + msg.err.Error()
			return m, nil
		}
		m.settings = msg.settings
		m.clampSelection()
		if m.settings.MorningFocusMode {
			m.lastLog = "Focus mode on."
		} else {
			m.lastLog = "Focus mode off."
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.visibleTasks())-1 {
				m.selected++
			}
			return m, nil
		case "a":
			m.showAll = !m.showAll
			m.clampSelection()
			return m, nil
		case "f":
			return m, m.focusCmd(!m.settings.MorningFocusMode)
		case "c", " ", "enter":
			tasks := m.visibleTasks()
			if m.selected < 0 || m.selected >= len(tasks) {
				return m, nil
			}
			t := tasks[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %s…", t.Title)
			return m, m.toggleCmd(t.ID)
		}
	}
	return m, nil
}

func toggleSummary(res engine.ToggleResult) string {
	var b strings.Builder
	if res.Completed {
		fmt.Fprintf(&b, "Done: +%d XP", res.XPDelta)
	} else {
		fmt.Fprintf(&b, "Undone: %d XP", res.XPDelta)
	}
	if res.LevelUp || res.LevelDown {
		fmt.Fprintf(&b, " (level %d → %d)", res.LevelBefore, res.LevelAfter)
	}
	if res.StreakCounted {
		fmt.Fprintf(&b, " streak %d", res.StreakAfter)
	}
	for _, badge := range res.NewBadges {
		fmt.Fprintf(&b, " %s %s unlocked!", ui.BadgeEmoji(badge.Icon), badge.Name)
	}
	return b.String()
}

// visibleTasks is today's list, or every task when showAll is set. Focus mode
// hides completed tasks.
func (m boardModel) visibleTasks() []model.Task {
	var src []model.Task
	if m.showAll {
		src = m.tasks
	} else {
		src = engine.TodaysTasks(m.tasks, m.svc.Now())
	}
	if !m.settings.MorningFocusMode {
		return src
	}
	var out []model.Task
	for _, t := range src {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (m *boardModel) clampSelection() {
	n := len(m.visibleTasks())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	header := m.renderHeader()
	main := m.renderMain()
	footer := m.renderFooter()
	if m.settings.MorningFocusMode {
		return header + "\n\n" + main + "\n" + footer
	}
	sidebar := m.renderSidebar()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.stats == nil {
		return "Daily Routine | loading…"
	}
	into, cost := engine.LevelProgress(m.stats.XP)
	bar := ui.ProgressBar(into, cost, 30)
	line := fmt.Sprintf("Daily Routine | Level %d | XP %d %s %d/%d | %s %d day streak",
		m.stats.Level, m.stats.XP, bar, into, cost, ui.IconFlame, m.stats.StreakDays)
	if m.settings.MorningFocusMode {
		line += " | focus"
	}
	return line
}

func (m boardModel) renderSidebar() string {
	if m.stats == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Today"}
	today := engine.TodaysTasks(m.tasks, m.svc.Now())
	lines = append(lines, fmt.Sprintf("- %d%% complete", engine.CompletionRate(today)))
	lines = append(lines, fmt.Sprintf("- %d tasks done total", m.stats.TotalTasksCompleted))
	lines = append(lines, "")

	lines = append(lines, "Categories")
	for _, c := range model.Categories {
		lines = append(lines, fmt.Sprintf("- %s %d", c, m.stats.CategoryStats[c]))
	}
	lines = append(lines, "")

	lines = append(lines, "Badges")
	if len(m.stats.Badges) == 0 {
		lines = append(lines, "(none yet)")
	}
	for _, b := range m.stats.Badges {
		lines = append(lines, fmt.Sprintf("- %s %s", ui.BadgeEmoji(b.Icon), b.Name))
	}
	lines = append(lines, "")

	q := engine.DailyQuote(m.svc.Now())
	lines = append(lines, "Quote")
	lines = append(lines, wrap(q.Text, 28)...)
	lines = append(lines, "  - "+q.Author)
	lines = append(lines, "")

	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space/c: toggle done")
	lines = append(lines, "- a: today/all")
	lines = append(lines, "- f: focus mode")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	if m.showAll {
		out = append(out, "All Tasks")
	} else {
		out = append(out, "Today's Routine ("+m.svc.Today()+")")
	}

	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		if m.settings.MorningFocusMode {
			out = append(out, "(all clear)")
		} else {
			out = append(out, "(no tasks, add one with `dr add`)")
		}
		return strings.Join(out, "\n")
	}
	for i, t := range tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		xp := engine.XPForTask(t.DurationMinutes, t.Category)
		line := fmt.Sprintf("%s%s %s (%s, %s, +%d XP)", cursor, box, t.Title, t.Category, ui.Minutes(t.DurationMinutes), xp)
		if m.showAll {
			line += " " + t.Date
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func wrap(s string, width int) []string {
	var lines []string
	cur := ""
	for _, w := range strings.Fields(s) {
		if cur != "" && len([]rune(cur))+1+len([]rune(w)) > width {
			lines = append(lines, "  "+cur)
			cur = w
			continue
		}
		if cur == "" {
			cur = w
		} else {
			cur += " " + w
		}
	}
	if cur != "" {
		lines = append(lines, "  "+cur)
	}
	return lines
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
