package service

import (
	"context"
	"fmt"
	"log"

	"progression-service/internal/badges"
	"progression-service/internal/models"
)

// BadgeService evaluates badge rules and persists awards. Award uniqueness
// is enforced by the achievement store's conditional insert, so evaluating
// the same context twice never produces a second award.
type BadgeService struct {
	Engine       *badges.Engine
	Achievements AchievementStore
	Progress     ProgressStore
}

func NewBadgeService(engine *badges.Engine, achievements AchievementStore, progress ProgressStore) *BadgeService {
	if engine == nil {
		engine = badges.NewEngine()
	}
	return &BadgeService{Engine: engine, Achievements: achievements, Progress: progress}
}

// EvaluateAndAward runs the rule engine over the snapshot and awards every
// newly qualifying badge, crediting its XP to the ledger. Individual award
// failures are logged and skipped; badge loss must never fail scoring.
func (s *BadgeService) EvaluateAndAward(ctx context.Context, userID string, snapshot *models.UserProgress, bctx badges.Context) []models.Achievement {
	ids := s.Engine.Evaluate(snapshot, bctx)
	return s.award(ctx, userID, ids, bctx)
}

// AwardMilestoneBadges persists the badges attached to newly reached streak
// milestones.
func (s *BadgeService) AwardMilestoneBadges(ctx context.Context, userID string, milestones []models.StreakMilestone, bctx badges.Context) []models.Achievement {
	var ids []string
	for _, m := range milestones {
		if m.BadgeID != "" {
			ids = append(ids, m.BadgeID)
		}
	}
	return s.award(ctx, userID, ids, bctx)
}

func (s *BadgeService) award(ctx context.Context, userID string, ids []string, bctx badges.Context) []models.Achievement {
	var awarded []models.Achievement
	for _, id := range ids {
		def, ok := s.Engine.Definition(id)
		if !ok {
			log.Printf("badge %q not in catalog, skipping award for user %s", id, userID)
			continue
		}
		created, err := s.Achievements.AwardOnce(ctx, userID, id, def.XP, bctx.Now)
		if err != nil {
			log.Printf("failed to award badge %q to user %s: %v", id, userID, err)
			continue
		}
		if !created {
			continue
		}
		if err := s.Progress.AddXP(ctx, userID, def.XP); err != nil {
			log.Printf("failed to credit %d xp for badge %q to user %s: %v", def.XP, id, userID, err)
		}
		awarded = append(awarded, models.Achievement{
			UserID:          userID,
			AchievementType: id,
			EarnedAt:        bctx.Now,
			XPReward:        def.XP,
		})
	}
	return awarded
}

// Collection merges the static catalog with the user's achievements for the
// badge listing endpoint.
func (s *BadgeService) Collection(ctx context.Context, userID string) (*models.BadgeCollection, error) {
	achievements, err := s.Achievements.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	earnedAt := make(map[string]models.Achievement, len(achievements))
	for _, a := range achievements {
		earnedAt[a.AchievementType] = a
	}

	collection := &models.BadgeCollection{
		Earned: []models.EarnedBadge{},
		Locked: []models.BadgeDefinition{},
		Stats: models.BadgeStats{
			ByRarity: make(map[models.Rarity]int),
		},
	}
	catalog := s.Engine.Catalog()
	for _, def := range catalog {
		if a, ok := earnedAt[def.ID]; ok {
			collection.Earned = append(collection.Earned, models.EarnedBadge{
				BadgeDefinition: def,
				EarnedAt:        a.EarnedAt,
			})
			collection.Stats.ByRarity[def.Rarity]++
		} else {
			collection.Locked = append(collection.Locked, def)
		}
	}
	collection.Stats.Total = len(catalog)
	collection.Stats.Earned = len(collection.Earned)
	if collection.Stats.Total > 0 {
		collection.Stats.Percentage = 100 * float64(collection.Stats.Earned) / float64(collection.Stats.Total)
	}
	return collection, nil
}
