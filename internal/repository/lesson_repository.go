package repository

import (
	"context"
	"errors"
	"music_learning_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Create(lesson).Error
}

// FindByID loads the lesson and its quizzes (without questions). nil, nil when absent.
func (r *LessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Quizzes").
		Where("id = ?", id).
		First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindByIDs loads lessons in one query, keyed by id. Missing ids are simply absent.
func (r *LessonRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Lesson, error) {
	out := make(map[string]*model.Lesson, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var lessons []model.Lesson
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&lessons).Error; err != nil {
		return nil, err
	}
	for i := range lessons {
		out[lessons[i].ID] = &lessons[i]
	}
	return out, nil
}

// AttachQuiz links an existing quiz to a lesson. Attaching twice is a no-op.
func (r *LessonRepository) AttachQuiz(ctx context.Context, lessonID, quizID string) error {
	lesson := &model.Lesson{UUIDBase: model.UUIDBase{ID: lessonID}}
	quiz := &model.Quiz{UUIDBase: model.UUIDBase{ID: quizID}}
	return r.DB.WithContext(ctx).Model(lesson).Association("Quizzes").Append(quiz)
}
