package badges

import (
	"time"

	"progression-service/internal/models"
)

// Context describes the event that triggered badge evaluation.
type Context struct {
	QuizCompleted bool
	Score         int
	TimeTaken     int // seconds
	Subject       string
	IsBattle      bool
	Won           bool
	Now           time.Time
}

// Engine evaluates badge rules against a user's current progress snapshot.
// Evaluation is pure: it returns the ids of every badge whose rule the
// snapshot satisfies. Uniqueness is not the engine's concern; the award
// store rejects repeats via the (user, badge) uniqueness constraint, which
// is what makes re-evaluation idempotent.
type Engine struct {
	catalog map[string]models.BadgeDefinition
}

func NewEngine() *Engine {
	catalog := make(map[string]models.BadgeDefinition)
	for _, def := range Catalog() {
		catalog[def.ID] = def
	}
	return &Engine{catalog: catalog}
}

// Definition looks up a badge by id.
func (e *Engine) Definition(id string) (models.BadgeDefinition, bool) {
	def, ok := e.catalog[id]
	return def, ok
}

// Catalog returns all badge definitions.
func (e *Engine) Catalog() []models.BadgeDefinition {
	return Catalog()
}

// Evaluate returns the badge ids qualifying for the given snapshot and
// event. The snapshot must reflect the finalized attempt (counters already
// incremented), so first_quiz means "this finalize made the count 1".
func (e *Engine) Evaluate(progress *models.UserProgress, ctx Context) []string {
	var qualified []string

	if ctx.QuizCompleted {
		if progress.TotalQuizzesCompleted == 1 {
			qualified = append(qualified, FirstQuiz)
		}
		if ctx.Score == 100 {
			qualified = append(qualified, PerfectScore)
		}
		if ctx.TimeTaken < 120 && ctx.Score >= 70 {
			qualified = append(qualified, SpeedDemon)
		}
		if progress.TotalQuizzesCompleted >= 50 {
			qualified = append(qualified, MarathonRunner)
		}
		if badgeID, ok := SubjectMasteryBadges[ctx.Subject]; ok {
			if sp, ok := progress.SubjectProgress[ctx.Subject]; ok && sp.QuestionsCorrect >= MasteryThreshold {
				qualified = append(qualified, badgeID)
			}
		}
	}

	if ctx.IsBattle && ctx.Won {
		qualified = append(qualified, BattleVictor)
	}

	hour := ctx.Now.Hour()
	if hour < 7 {
		qualified = append(qualified, EarlyBird)
	}
	if hour >= 23 {
		qualified = append(qualified, NightOwl)
	}

	return qualified
}
