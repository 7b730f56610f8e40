package service

import (
	"context"
	"fmt"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/util"
	"strings"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	Quizzes    QuizStore
}

func NewLessonService(lessonRepo *repository.LessonRepository, quizzes QuizStore) *LessonService {
	return &LessonService{LessonRepo: lessonRepo, Quizzes: quizzes}
}

func (s *LessonService) Create(ctx context.Context, lesson *model.Lesson) error {
	lesson.Title = strings.TrimSpace(lesson.Title)
	if lesson.Title == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidLesson)
	}
	if lesson.Quizzes == nil {
		lesson.Quizzes = []model.Quiz{}
	}
	if err := s.LessonRepo.Create(ctx, lesson); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

func (s *LessonService) Get(ctx context.Context, id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

// AttachQuiz links a quiz to a lesson and returns the lesson with its quizzes.
func (s *LessonService) AttachQuiz(ctx context.Context, lessonID, quizID string) (*model.Lesson, error) {
	if _, err := s.Get(ctx, lessonID); err != nil {
		return nil, err
	}
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}

	if err := s.LessonRepo.AttachQuiz(ctx, lessonID, quizID); err != nil {
		return nil, fmt.Errorf("attach quiz: %w", err)
	}
	return s.Get(ctx, lessonID)
}
