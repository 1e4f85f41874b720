package models

import "time"

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// BadgeDefinition is one entry of the static badge catalog, loaded at
// process start and never mutated.
type BadgeDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
	XP          int    `json:"xp"`
}

// Achievement records a badge awarded to a user. At most one document exists
// per (user_id, achievement_type) pair.
type Achievement struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	AchievementType string    `bson:"achievement_type" json:"achievement_type"`
	EarnedAt        time.Time `bson:"earned_at" json:"earned_at"`
	XPReward        int       `bson:"xp_reward" json:"xp_reward"`
}

type EarnedBadge struct {
	BadgeDefinition
	EarnedAt time.Time `json:"earned_at"`
}

type BadgeStats struct {
	Total      int            `json:"total"`
	Earned     int            `json:"earned"`
	Percentage float64        `json:"percentage"`
	ByRarity   map[Rarity]int `json:"by_rarity"`
}

type BadgeCollection struct {
	Earned []EarnedBadge     `json:"earned"`
	Locked []BadgeDefinition `json:"locked"`
	Stats  BadgeStats        `json:"stats"`
}
