package repository

import (
	"context"
	"errors"

	"progression-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizRepository struct {
	QuizCol     *mongo.Collection
	QuestionCol *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{
		QuizCol:     db.Collection("quizzes"),
		QuestionCol: db.Collection("questions"),
	}
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.QuizCol.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindQuestions(ctx context.Context, quizID string) ([]models.Question, error) {
	cur, err := r.QuestionCol.Find(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

// GetQuizWithQuestions loads a quiz together with its question set.
func (r *QuizRepository) GetQuizWithQuestions(ctx context.Context, quizID string) (*models.Quiz, []models.Question, error) {
	quiz, err := r.FindByID(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := r.FindQuestions(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}
	return quiz, questions, nil
}
