package models

import "time"

type StreakMilestone struct {
	Days      int       `bson:"days" json:"days"`
	ReachedAt time.Time `bson:"reached_at" json:"reached_at"`
	RewardXP  int       `bson:"reward_xp" json:"reward_xp"`
	BadgeID   string    `bson:"badge_id" json:"badge_id"`
}

// StreakState tracks a user's daily-activity continuity. It is embedded in
// the user's progress document and mutated only through streak.Tracker.
type StreakState struct {
	CurrentStreak     int               `bson:"current_streak" json:"current_streak"`
	LongestStreak     int               `bson:"longest_streak" json:"longest_streak"`
	LastActivityDate  *time.Time        `bson:"last_activity_date" json:"last_activity_date"`
	FreezesAvailable  int               `bson:"freezes_available" json:"freezes_available"`
	FreezeUsedToday   bool              `bson:"freeze_used_today" json:"freeze_used_today"`
	CurrentMultiplier float64           `bson:"current_multiplier" json:"current_multiplier"`
	Milestones        []StreakMilestone `bson:"milestones" json:"milestones"`
}

// HasMilestone reports whether a milestone for the given day count was
// already recorded.
func (s *StreakState) HasMilestone(days int) bool {
	for _, m := range s.Milestones {
		if m.Days == days {
			return true
		}
	}
	return false
}
