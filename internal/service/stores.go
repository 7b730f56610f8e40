package service

import (
	"context"
	"music_learning_backend/internal/model"
)

// Lookups return nil, nil when the row does not exist.

type QuizStore interface {
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
}

type CompletionStore interface {
	FindByUserAndQuiz(ctx context.Context, userID, quizID string) (*model.UserCompletedQuiz, error)
	InsertIfAbsent(ctx context.Context, rec *model.UserCompletedQuiz) (bool, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.UserCompletedQuiz, error)
}

type RecordingStore interface {
	FindByID(ctx context.Context, id string) (*model.UserRecording, error)
	FindByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserRecording, error)
	Upsert(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) error
	InsertIfAbsent(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) (bool, error)
	ReplaceAudio(ctx context.Context, id, expectedURL, audioURL string, durationSeconds float64) (bool, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.UserRecording, error)
	FindByUserAndLessonList(ctx context.Context, userID, lessonID string) ([]model.UserRecording, error)
	Delete(ctx context.Context, id string) error
}

type LessonStore interface {
	FindByID(ctx context.Context, id string) (*model.Lesson, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Lesson, error)
}
