package engine

import "dailyroutine/internal/model"

const (
	// MaxLevel caps leveling; XP keeps accumulating past it.
	MaxLevel = 100

	// BaseLevelCost is the XP needed to go from level 1 to level 2.
	BaseLevelCost = 100

	// LevelCostGrowth is applied (then floored) to each successive level cost.
	LevelCostGrowth = 1.1

	// MinTaskXP is the floor for any completed task.
	MinTaskXP = 10

	// MinutesPerXP converts task duration into base XP.
	MinutesPerXP = 5

	// BusinessMultiplier boosts Business tasks.
	BusinessMultiplier = 1.2
)

func nextLevelCost(cost int) int {
	return int(float64(cost) * LevelCostGrowth)
}

// XPThresholdForLevel returns the XP cost to advance from level to level+1.
// The geometric series is replayed from level 1 on each call.
func XPThresholdForLevel(level int) int {
	cost := BaseLevelCost
	for i := 1; i < level; i++ {
		cost = nextLevelCost(cost)
	}
	return cost
}

// LevelForXP returns the level reached with the given cumulative XP.
func LevelForXP(xp int) int {
	level := 1
	cost := BaseLevelCost
	remaining := xp
	for remaining >= cost && level < MaxLevel {
		remaining -= cost
		level++
		cost = nextLevelCost(cost)
	}
	return level
}

// XPToReachLevel returns the cumulative XP at which level is entered.
// Level 1 is entered at 0 XP.
func XPToReachLevel(level int) int {
	if level > MaxLevel {
		level = MaxLevel
	}
	total := 0
	cost := BaseLevelCost
	for l := 1; l < level; l++ {
		total += cost
		cost = nextLevelCost(cost)
	}
	return total
}

// LevelProgress reports how far xp is into its current level and the cost of
// that level. At MaxLevel the bar is reported as full.
func LevelProgress(xp int) (into int, cost int) {
	level := LevelForXP(xp)
	cost = XPThresholdForLevel(level)
	if level >= MaxLevel {
		return cost, cost
	}
	into = xp - XPToReachLevel(level)
	if into < 0 {
		into = 0
	}
	return into, cost
}

// XPForTask computes the XP awarded for completing a task, and the exact
// amount taken back when it is un-completed.
func XPForTask(durationMinutes int, category model.Category) int {
	base := durationMinutes / MinutesPerXP
	if base < MinTaskXP {
		base = MinTaskXP
	}
	mult := 1.0
	if category == model.CategoryBusiness {
		mult = BusinessMultiplier
	}
	return int(float64(base) * mult)
}
