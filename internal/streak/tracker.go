package streak

import (
	"time"

	"progression-service/internal/models"
)

// MultiplierTier maps a minimum streak length to an XP multiplier.
type MultiplierTier struct {
	MinStreak  int     `json:"min_streak"`
	Multiplier float64 `json:"multiplier"`
}

// MilestoneReward defines the reward granted when a streak first reaches a
// day threshold. GrantsFreeze marks the thresholds that also hand out a
// streak freeze.
type MilestoneReward struct {
	Days         int    `json:"days"`
	XP           int    `json:"xp"`
	BadgeID      string `json:"badge_id"`
	GrantsFreeze bool   `json:"grants_freeze"`
}

// Config holds the streak progression tables.
type Config struct {
	// MultiplierTiers must be ordered by MinStreak descending.
	MultiplierTiers []MultiplierTier
	// Milestones must be ordered by Days ascending.
	Milestones []MilestoneReward
	// MaxFreezes caps how many freezes a user can hold.
	MaxFreezes int
}

// DefaultConfig returns the production streak tables.
func DefaultConfig() *Config {
	return &Config{
		MultiplierTiers: []MultiplierTier{
			{MinStreak: 30, Multiplier: 2.0},
			{MinStreak: 14, Multiplier: 1.5},
			{MinStreak: 7, Multiplier: 1.25},
			{MinStreak: 3, Multiplier: 1.1},
			{MinStreak: 0, Multiplier: 1.0},
		},
		Milestones: []MilestoneReward{
			{Days: 3, XP: 50, BadgeID: "streak_starter"},
			{Days: 7, XP: 100, BadgeID: "week_warrior", GrantsFreeze: true},
			{Days: 14, XP: 200, BadgeID: "fortnight_fighter"},
			{Days: 30, XP: 500, BadgeID: "monthly_master", GrantsFreeze: true},
			{Days: 60, XP: 1000, BadgeID: "dedication_king"},
			{Days: 100, XP: 2000, BadgeID: "century_champion", GrantsFreeze: true},
			{Days: 365, XP: 5000, BadgeID: "year_legend"},
		},
		MaxFreezes: 3,
	}
}

// Result reports the outcome of one Update call.
type Result struct {
	Streak        int                      `json:"streak"`
	Multiplier    float64                  `json:"multiplier"`
	Maintained    bool                     `json:"maintained"`
	FreezeUsed    bool                     `json:"freeze_used"`
	NewMilestones []models.StreakMilestone `json:"new_milestones"`
}

// Tracker applies daily-activity updates to a user's streak state.
type Tracker struct {
	config *Config
}

func NewTracker(config *Config) *Tracker {
	if config == nil {
		config = DefaultConfig()
	}
	return &Tracker{config: config}
}

// Update advances the streak state for an activity happening at now. Streak
// continuity is judged on calendar days, not 24h windows: a repeat activity
// on the same day is a no-op, activity on the next day extends the streak,
// and a gap either consumes a freeze (preserving the streak as-is) or resets
// it to 1. Milestones newly reached by this call are appended to the state
// and returned; milestones already present are never duplicated.
func (t *Tracker) Update(state *models.StreakState, now time.Time) Result {
	if state.LastActivityDate != nil && sameDay(*state.LastActivityDate, now) {
		return Result{
			Streak:     state.CurrentStreak,
			Multiplier: state.CurrentMultiplier,
			Maintained: true,
		}
	}

	result := Result{}

	switch {
	case state.LastActivityDate == nil:
		// First ever activity. A freeze never applies here.
		state.CurrentStreak = 1
	case isPreviousDay(*state.LastActivityDate, now):
		state.CurrentStreak++
	default:
		// Missed at least one full day.
		if state.FreezesAvailable > 0 && !state.FreezeUsedToday {
			state.FreezesAvailable--
			state.FreezeUsedToday = true
			result.FreezeUsed = true
			// Streak preserved, not incremented.
		} else {
			state.CurrentStreak = 1
		}
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}

	state.CurrentMultiplier = t.Multiplier(state.CurrentStreak)
	result.NewMilestones = t.applyMilestones(state, now)

	activity := now
	state.LastActivityDate = &activity
	if !result.FreezeUsed {
		state.FreezeUsedToday = false
	}

	result.Streak = state.CurrentStreak
	result.Multiplier = state.CurrentMultiplier
	return result
}

// Multiplier returns the XP multiplier for a streak length. Pure step
// function: same input always yields the same output.
func (t *Tracker) Multiplier(streak int) float64 {
	for _, tier := range t.config.MultiplierTiers {
		if streak >= tier.MinStreak {
			return tier.Multiplier
		}
	}
	return 1.0
}

// applyMilestones appends every threshold the current streak now satisfies
// that was not already recorded. A single call can cross several thresholds
// at once (e.g. a freeze-preserved streak revisiting its length).
func (t *Tracker) applyMilestones(state *models.StreakState, now time.Time) []models.StreakMilestone {
	var reached []models.StreakMilestone
	for _, m := range t.config.Milestones {
		if m.Days > state.CurrentStreak || state.HasMilestone(m.Days) {
			continue
		}
		milestone := models.StreakMilestone{
			Days:      m.Days,
			ReachedAt: now,
			RewardXP:  m.XP,
			BadgeID:   m.BadgeID,
		}
		state.Milestones = append(state.Milestones, milestone)
		reached = append(reached, milestone)
		if m.GrantsFreeze && state.FreezesAvailable < t.config.MaxFreezes {
			state.FreezesAvailable++
		}
	}
	return reached
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isPreviousDay(last, now time.Time) bool {
	return sameDay(last.AddDate(0, 0, 1), now)
}
