package repository

import (
	"context"
	"errors"
	"music_learning_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// FindByUserAndQuiz returns nil, nil when the user has not completed the quiz.
func (r *CompletionRepository) FindByUserAndQuiz(ctx context.Context, userID, quizID string) (*model.UserCompletedQuiz, error) {
	var rec model.UserCompletedQuiz
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertIfAbsent stores rec unless a record for the same (user, quiz) exists.
// The unique index decides the race; inserted is false for the loser.
func (r *CompletionRepository) InsertIfAbsent(ctx context.Context, rec *model.UserCompletedQuiz) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindAllByUser lists completions oldest first.
func (r *CompletionRepository) FindAllByUser(ctx context.Context, userID string) ([]model.UserCompletedQuiz, error) {
	var recs []model.UserCompletedQuiz
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at asc").
		Find(&recs).Error
	return recs, err
}
