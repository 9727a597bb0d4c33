package stats

// Metric selects the value a Rule compares against its threshold.
type Metric int

const (
	MetricStitches Metric = iota
	MetricGoals
	MetricCompletedGoals
	MetricRows
	MetricStreak
	MetricPhotos
	MetricYarnTypes
)

// Rule unlocks Label once Metric reaches Threshold.
type Rule struct {
	Metric    Metric
	Threshold int
	Label     string
}

// Rules are evaluated in this order and every met rule is shown, so 120
// stitches unlock the 10, 25, 50, 75 and 100 badges together.
var Rules = []Rule{
	{MetricStitches, 10, "🥉 Novice Stitcher (10+ stitches)"},
	{MetricStitches, 25, "📎 Consistent Crafter (25+ stitches)"},
	{MetricStitches, 50, "🥈 Skilled Stitcher (50+ stitches)"},
	{MetricStitches, 75, "🧷 Committed Crafter (75+ stitches)"},
	{MetricStitches, 100, "🥇 Master Stitcher (100+ stitches)"},
	{MetricStitches, 150, "🧶 Needle Ninja (150+ stitches)"},
	{MetricStitches, 200, "🪡 Thread Tycoon (200+ stitches)"},
	{MetricStitches, 250, "🏆 Legendary Crafter (250+ stitches)"},
	{MetricStitches, 500, "🌟 Artisan of Yarn (500+ stitches)"},
	{MetricStitches, 1000, "🌈 Fiber Enthusiast (1000+ stitches)"},
	{MetricStitches, 5000, "🎖️ Precision Prodigy (5000+ stitches)"},
	{MetricStitches, 10000, "🧵 Marathon Maker (10000+ stitches)"},
	{MetricStitches, 25000, "🔱 Supreme Stitch Sorcerer (25,000+ stitches)"},
	{MetricStitches, 50000, "👑 Crochet Commander (50,000+ stitches)"},
	{MetricStitches, 100000, "🏅 Immortal Hook Hero (100,000+ stitches)"},

	{MetricGoals, 5, "🎯 Goal Getter (5+ goals set)"},
	{MetricGoals, 10, "🎯 Focused Finisher (10+ goals set)"},

	{MetricCompletedGoals, 1, "🏁 First Finish (1 project completed)"},
	{MetricCompletedGoals, 5, "🏅 Project Champion (5 projects completed)"},
	{MetricCompletedGoals, 10, "🎉 Achievement Addict (10 projects completed)"},

	{MetricRows, 10, "📏 Row Rookie (10 rows tracked)"},
	{MetricRows, 25, "📐 Pattern Pacer (25 rows tracked)"},
	{MetricRows, 50, "📊 Precision Planner (50 rows tracked)"},
	{MetricRows, 100, "📘 Structured Stitcher (100 rows tracked)"},
	{MetricRows, 250, "📙 Routine Row Renegade (250 rows tracked)"},
	{MetricRows, 500, "📗 Epic Row Engineer (500 rows tracked)"},

	{MetricStreak, 3, "🔥 3-Day Streaker"},
	{MetricStreak, 7, "💥 Weekly Warrior (7-day streak)"},
	{MetricStreak, 14, "⚡ Hook Habit Hero (14-day streak)"},

	{MetricPhotos, 5, "📸 Snapshot Stitcher (5+ photos)"},
	{MetricPhotos, 10, "📷 Crafting Chronicler (10+ photos)"},

	{MetricYarnTypes, 10, "🧺 Yarn Collector (10+ yarn types)"},
	{MetricYarnTypes, 20, "🎨 Palette Perfectionist (20+ yarn types)"},
}

func (t Totals) value(m Metric, streak int) int {
	switch m {
	case MetricStitches:
		return t.CompletedStitches
	case MetricGoals:
		return t.Goals
	case MetricCompletedGoals:
		return t.CompletedGoals
	case MetricRows:
		return t.Rows
	case MetricStreak:
		return streak
	case MetricPhotos:
		return t.Photos
	case MetricYarnTypes:
		return t.YarnTypes
	}
	return 0
}

// Awards returns the label of every rule met by t and streak, in rule order.
func Awards(t Totals, streak int) []string {
	return evaluate(Rules, t, streak)
}

func evaluate(rules []Rule, t Totals, streak int) []string {
	var out []string
	for _, r := range rules {
		if t.value(r.Metric, streak) >= r.Threshold {
			out = append(out, r.Label)
		}
	}
	return out
}
