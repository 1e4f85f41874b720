package service

import (
	"context"
	"sync"
	"time"

	"progression-service/internal/models"
	"progression-service/internal/repository"
)

// In-memory stores mirroring the mongo repositories' conditional-write
// semantics, used to exercise the services without a database.

type memProgressStore struct {
	mu       sync.Mutex
	users    map[string]*models.UserProgress
	failNext bool // next FinalizeAttempt fails, simulating a storage outage
}

func newMemProgressStore() *memProgressStore {
	return &memProgressStore{users: make(map[string]*models.UserProgress)}
}

func (s *memProgressStore) GetOrCreate(_ context.Context, userID string) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		p = &models.UserProgress{
			UserID:          userID,
			Level:           1,
			SubjectProgress: map[string]models.SubjectProgress{},
			Streak:          models.StreakState{CurrentMultiplier: 1.0},
		}
		s.users[userID] = p
	}
	return cloneProgress(p), nil
}

func (s *memProgressStore) FindByUser(_ context.Context, userID string) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		return nil, models.ErrProgressNotFound
	}
	return cloneProgress(p), nil
}

func (s *memProgressStore) ClaimAttempt(_ context.Context, userID string, placeholder models.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		return models.ErrProgressNotFound
	}
	for _, a := range p.QuizAttempts {
		if a.QuizID == placeholder.QuizID {
			return models.ErrDuplicateSubmission
		}
	}
	placeholder.Claimed = true
	p.QuizAttempts = append(p.QuizAttempts, placeholder)
	return nil
}

func (s *memProgressStore) FinalizeAttempt(_ context.Context, userID string, update repository.FinalizeUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return context.DeadlineExceeded
	}
	p, ok := s.users[userID]
	if !ok {
		return models.ErrProgressNotFound
	}
	for i := range p.QuizAttempts {
		if p.QuizAttempts[i].QuizID == update.Attempt.QuizID && p.QuizAttempts[i].Claimed {
			update.Attempt.Claimed = false
			p.QuizAttempts[i] = update.Attempt
			p.Streak = update.Streak
			p.SubjectProgress[update.Attempt.Subject] = update.SubjectProgress
			p.Level = update.Level
			p.TotalXP += update.XPDelta
			p.TotalQuizzesCompleted++
			p.TotalQuestionsCorrect += update.QuestionsCorrect
			return nil
		}
	}
	return models.ErrAttemptNotFound
}

func (s *memProgressStore) AddXP(_ context.Context, userID string, xp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		return models.ErrProgressNotFound
	}
	p.TotalXP += xp
	p.Level = models.LevelForXP(p.TotalXP)
	return nil
}

func (s *memProgressStore) SpendXPOnFreeze(_ context.Context, userID string, cost, maxFreezes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		return models.ErrProgressNotFound
	}
	if p.TotalXP < cost || p.Streak.FreezesAvailable >= maxFreezes {
		return models.ErrFreezeUnavailable
	}
	p.TotalXP -= cost
	p.Streak.FreezesAvailable++
	return nil
}

// seed replaces the stored document, for test setup.
func (s *memProgressStore) seed(p *models.UserProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[p.UserID] = cloneProgress(p)
}

func (s *memProgressStore) get(userID string) *models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProgress(s.users[userID])
}

func cloneProgress(p *models.UserProgress) *models.UserProgress {
	if p == nil {
		return nil
	}
	clone := *p
	clone.QuizAttempts = append([]models.QuizAttempt(nil), p.QuizAttempts...)
	clone.SubjectProgress = make(map[string]models.SubjectProgress, len(p.SubjectProgress))
	for k, v := range p.SubjectProgress {
		clone.SubjectProgress[k] = v
	}
	clone.Streak.Milestones = append([]models.StreakMilestone(nil), p.Streak.Milestones...)
	if p.Streak.LastActivityDate != nil {
		last := *p.Streak.LastActivityDate
		clone.Streak.LastActivityDate = &last
	}
	return &clone
}

type memQuizStore struct {
	quizzes   map[string]*models.Quiz
	questions map[string][]models.Question
}

func newMemQuizStore() *memQuizStore {
	return &memQuizStore{
		quizzes:   make(map[string]*models.Quiz),
		questions: make(map[string][]models.Question),
	}
}

func (s *memQuizStore) add(quiz *models.Quiz, questions []models.Question) {
	s.quizzes[quiz.ID] = quiz
	s.questions[quiz.ID] = questions
}

func (s *memQuizStore) GetQuizWithQuestions(_ context.Context, quizID string) (*models.Quiz, []models.Question, error) {
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return nil, nil, models.ErrQuizNotFound
	}
	return quiz, s.questions[quizID], nil
}

type memAchievementStore struct {
	mu     sync.Mutex
	awards map[string]models.Achievement // key: userID + "/" + type
}

func newMemAchievementStore() *memAchievementStore {
	return &memAchievementStore{awards: make(map[string]models.Achievement)}
}

func (s *memAchievementStore) AwardOnce(_ context.Context, userID, achievementType string, xpReward int, earnedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + achievementType
	if _, ok := s.awards[key]; ok {
		return false, nil
	}
	s.awards[key] = models.Achievement{
		UserID:          userID,
		AchievementType: achievementType,
		EarnedAt:        earnedAt,
		XPReward:        xpReward,
	}
	return true, nil
}

func (s *memAchievementStore) FindByUser(_ context.Context, userID string) ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Achievement
	for _, a := range s.awards {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAchievementStore) has(userID, achievementType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.awards[userID+"/"+achievementType]
	return ok
}
