package service

import (
	"context"
	"fmt"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/util"
	"strings"
)

type QuestionInput struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	ImageURL      string   `json:"imageUrl"`
}

type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// toModel validates the input. correctAnswer is not required to be one of the options.
func (in QuizInput) toModel() (*model.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", util.ErrInvalidQuiz)
	}

	quiz := &model.Quiz{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Questions:   make([]model.QuizQuestion, 0, len(in.Questions)),
	}
	for i, q := range in.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("%w: question %d has no text", util.ErrInvalidQuiz, i)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, fmt.Errorf("%w: question %d has no correct answer", util.ErrInvalidQuiz, i)
		}
		question := model.QuizQuestion{
			Position:      i,
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			ImageURL:      q.ImageURL,
		}
		question.SetOptions(q.Options)
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz, nil
}

type QuizService struct {
	QuizRepo *repository.QuizRepository
	Cache    *repository.QuizCache
}

func NewQuizService(quizRepo *repository.QuizRepository, cache *repository.QuizCache) *QuizService {
	return &QuizService{QuizRepo: quizRepo, Cache: cache}
}

func (s *QuizService) Create(ctx context.Context, in QuizInput) (*model.Quiz, error) {
	quiz, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// Get reads through the cache.
func (s *QuizService) Get(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.Cache.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

// Update replaces title, description and questions, then drops the cached copy.
func (s *QuizService) Update(ctx context.Context, id string, in QuizInput) (*model.Quiz, error) {
	quiz, err := in.toModel()
	if err != nil {
		return nil, err
	}
	quiz.ID = id

	found, err := s.QuizRepo.ReplaceContent(ctx, quiz)
	if err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	if !found {
		return nil, util.ErrQuizNotFound
	}
	s.Cache.Invalidate(ctx, id)

	updated, err := s.QuizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload quiz: %w", err)
	}
	if updated == nil {
		return nil, util.ErrQuizNotFound
	}
	return updated, nil
}

// List reads straight from the database.
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *QuizService) Delete(ctx context.Context, id string) error {
	found, err := s.QuizRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if !found {
		return util.ErrQuizNotFound
	}
	s.Cache.Invalidate(ctx, id)
	return nil
}
