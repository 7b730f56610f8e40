package repository

import (
	"context"
	"errors"
	"music_learning_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// Create inserts the quiz together with its questions.
func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

// FindByID returns the quiz with its questions in position order, or nil when absent.
func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Where("id = ?", id).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ReplaceContent overwrites title, description and the full question list.
// It reports false when the quiz does not exist.
func (r *QuizRepository) ReplaceContent(ctx context.Context, quiz *model.Quiz) (bool, error) {
	found := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Quiz{}).
			Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"title":       quiz.Title,
				"description": quiz.Description,
			})
		if res.Error != nil {
			return res.Error
		}
		var count int64
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		for i := range quiz.Questions {
			quiz.Questions[i].ID = 0
			quiz.Questions[i].QuizID = quiz.ID
			quiz.Questions[i].Position = i
		}
		if len(quiz.Questions) > 0 {
			if err := tx.Create(&quiz.Questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return found, err
}

// List returns all quizzes with their questions, newest first.
func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Order("created_at desc").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete removes the quiz, its questions and its lesson links.
// Completion records are kept. It reports false when the quiz does not exist.
func (r *QuizRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM lesson_quizzes WHERE quiz_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Quiz{})
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}
