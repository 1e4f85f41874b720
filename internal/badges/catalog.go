package badges

import "progression-service/internal/models"

// Badge ids referenced by the rule engine and the streak milestone table.
const (
	FirstQuiz        = "first_quiz"
	PerfectScore     = "perfect_score"
	SpeedDemon       = "speed_demon"
	MarathonRunner   = "marathon_runner"
	BattleVictor     = "battle_victor"
	EarlyBird        = "early_bird"
	NightOwl         = "night_owl"
	StreakStarter    = "streak_starter"
	WeekWarrior      = "week_warrior"
	FortnightFighter = "fortnight_fighter"
	MonthlyMaster    = "monthly_master"
	DedicationKing   = "dedication_king"
	CenturyChampion  = "century_champion"
	YearLegend       = "year_legend"
)

// SubjectMasteryBadges maps a subject to its mastery badge id, awarded at
// MasteryThreshold correct answers in that subject.
var SubjectMasteryBadges = map[string]string{
	"math":        "math_master",
	"science":     "science_sage",
	"physics":     "physics_pro",
	"chemistry":   "chemistry_champion",
	"biology":     "biology_boss",
	"technology":  "tech_titan",
	"engineering": "engineering_expert",
}

const MasteryThreshold = 100

// Catalog returns the static badge catalog. Presentation metadata (icons,
// gradients) lives in the client; only id, rarity and XP matter here.
func Catalog() []models.BadgeDefinition {
	defs := []models.BadgeDefinition{
		{ID: FirstQuiz, Title: "First Steps", Description: "Complete your first quiz", Rarity: models.RarityCommon, XP: 25},
		{ID: PerfectScore, Title: "Flawless", Description: "Score 100% on a quiz", Rarity: models.RarityUncommon, XP: 50},
		{ID: SpeedDemon, Title: "Speed Demon", Description: "Score 70%+ in under two minutes", Rarity: models.RarityRare, XP: 75},
		{ID: MarathonRunner, Title: "Marathon Runner", Description: "Complete 50 quizzes", Rarity: models.RarityEpic, XP: 300},
		{ID: BattleVictor, Title: "Battle Victor", Description: "Win your first quiz battle", Rarity: models.RarityUncommon, XP: 50},
		{ID: EarlyBird, Title: "Early Bird", Description: "Finish a quiz before 7am", Rarity: models.RarityUncommon, XP: 40},
		{ID: NightOwl, Title: "Night Owl", Description: "Finish a quiz after 11pm", Rarity: models.RarityUncommon, XP: 40},
		{ID: StreakStarter, Title: "Streak Starter", Description: "3-day streak", Rarity: models.RarityCommon, XP: 25},
		{ID: WeekWarrior, Title: "Week Warrior", Description: "7-day streak", Rarity: models.RarityUncommon, XP: 50},
		{ID: FortnightFighter, Title: "Fortnight Fighter", Description: "14-day streak", Rarity: models.RarityRare, XP: 100},
		{ID: MonthlyMaster, Title: "Monthly Master", Description: "30-day streak", Rarity: models.RarityRare, XP: 150},
		{ID: DedicationKing, Title: "Dedication King", Description: "60-day streak", Rarity: models.RarityEpic, XP: 300},
		{ID: CenturyChampion, Title: "Century Champion", Description: "100-day streak", Rarity: models.RarityEpic, XP: 500},
		{ID: YearLegend, Title: "Year Legend", Description: "365-day streak", Rarity: models.RarityLegendary, XP: 1000},
	}
	for subject, id := range SubjectMasteryBadges {
		defs = append(defs, models.BadgeDefinition{
			ID:          id,
			Title:       masteryTitle(subject),
			Description: "Answer 100 " + subject + " questions correctly",
			Rarity:      models.RarityRare,
			XP:          150,
		})
	}
	return defs
}

func masteryTitle(subject string) string {
	titles := map[string]string{
		"math":        "Math Master",
		"science":     "Science Sage",
		"physics":     "Physics Pro",
		"chemistry":   "Chemistry Champion",
		"biology":     "Biology Boss",
		"technology":  "Tech Titan",
		"engineering": "Engineering Expert",
	}
	if t, ok := titles[subject]; ok {
		return t
	}
	return subject
}
