package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

// DefaultMilestones is the ascending streak milestone table, in days.
var DefaultMilestones = []int{3, 7, 14, 21, 30, 60, 90, 180, 365}

// DefaultBadgeTiers maps streak thresholds to badge descriptors; the highest
// threshold met wins.
var DefaultBadgeTiers = []model.StreakBadge{
	{Threshold: 0, Tier: "none", Name: "First Steps"},
	{Threshold: 3, Tier: "bronze", Name: "Getting Started"},
	{Threshold: 7, Tier: "bronze", Name: "Week Warrior"},
	{Threshold: 14, Tier: "silver", Name: "Fortnight Focus"},
	{Threshold: 30, Tier: "silver", Name: "Monthly Master"},
	{Threshold: 90, Tier: "gold", Name: "Quarterly Champion"},
	{Threshold: 180, Tier: "gold", Name: "Half-Year Hero"},
	{Threshold: 365, Tier: "platinum", Name: "Year-Long Legend"},
}

// StreakTracker reduces timestamped log events to a consecutive-day streak.
// Milestone and badge tables are carried on the tracker so tests can shrink
// them.
type StreakTracker struct {
	Milestones []int
	BadgeTiers []model.StreakBadge
}

// NewStreakTracker creates a StreakTracker with the default tables
func NewStreakTracker() *StreakTracker {
	return &StreakTracker{
		Milestones: DefaultMilestones,
		BadgeTiers: DefaultBadgeTiers,
	}
}

// CalculateStreak reduces log timestamps to the current and longest runs of
// consecutive calendar days. A one-day grace window applies: the streak only
// counts as current when the most recent logged day is today or yesterday.
func (t *StreakTracker) CalculateStreak(logTimes []time.Time, now time.Time) model.StreakResult {
	days := distinctDaysDescending(logTimes)
	if len(days) == 0 {
		return model.StreakResult{
			CurrentStreak:      0,
			LongestStreak:      0,
			LastLogDate:        nil,
			NextMilestone:      t.Milestones[0],
			DaysUntilMilestone: t.Milestones[0],
			MilestoneProgress:  0,
		}
	}

	lastLog := days[0]

	current := 0
	if daysBetween(lastLog, now) <= 1 {
		current = 1
		for i := 1; i < len(days); i++ {
			if daysBetween(days[i], days[i-1]) != 1 {
				break
			}
			current++
		}
	}

	longest := longestRun(days)
	if current > longest {
		longest = current
	}

	next, prev := t.milestoneBounds(current)
	progress := 100
	if next > prev {
		progress = int(math.Round(float64(current-prev) / float64(next-prev) * 100))
	}

	return model.StreakResult{
		CurrentStreak:      current,
		LongestStreak:      longest,
		LastLogDate:        &lastLog,
		NextMilestone:      next,
		DaysUntilMilestone: next - current,
		MilestoneProgress:  progress,
	}
}

// MilestoneBadge returns the badge descriptor for a streak length; the
// highest threshold met wins.
func (t *StreakTracker) MilestoneBadge(streak int) model.StreakBadge {
	badge := t.BadgeTiers[0]
	for _, tier := range t.BadgeTiers {
		if streak >= tier.Threshold {
			badge = tier
		}
	}
	return badge
}

// MotivationalMessage maps the distance to the next milestone to a fixed
// encouragement string
func MotivationalMessage(daysUntilMilestone int) string {
	switch {
	case daysUntilMilestone <= 0:
		return "Milestone reached! Incredible consistency."
	case daysUntilMilestone == 1:
		return "Just 1 more day to your next milestone!"
	case daysUntilMilestone <= 3:
		return "Almost there, keep the streak alive!"
	case daysUntilMilestone <= 7:
		return "Less than a week to your next milestone."
	default:
		return "Every day logged brings you closer to your next milestone."
	}
}

// milestoneBounds returns the smallest milestone above the streak and the
// largest at or below it (0 when none). Past the table maximum both bounds
// collapse to the maximum.
func (t *StreakTracker) milestoneBounds(streak int) (next, prev int) {
	next = t.Milestones[len(t.Milestones)-1]
	for _, m := range t.Milestones {
		if m > streak {
			next = m
			break
		}
	}
	prev = 0
	for _, m := range t.Milestones {
		if m <= streak {
			prev = m
		}
	}
	return next, prev
}

// distinctDaysDescending reduces timestamps to unique local-midnight days,
// most recent first.
func distinctDaysDescending(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	days := make([]time.Time, 0, len(times))
	for _, ts := range times {
		d := dayStart(ts)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// longestRun finds the longest run of consecutive days in a descending list
// of distinct days.
func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
