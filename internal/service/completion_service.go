package service

import (
	"context"
	"fmt"
	"music_learning_backend/internal/model"
	"music_learning_backend/pkg/logger"
	"music_learning_backend/pkg/monitoring"
	"music_learning_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type SubmitOutcome string

const (
	OutcomeCompleted        SubmitOutcome = "completed"
	OutcomeAlreadyCompleted SubmitOutcome = "already_completed"
	OutcomeIncorrect        SubmitOutcome = "incorrect"
	OutcomeIncomplete       SubmitOutcome = "incomplete"
	OutcomeQuizNotFound     SubmitOutcome = "quiz_not_found"
	OutcomeNoQuestions      SubmitOutcome = "no_questions"
	OutcomeInternalFailure  SubmitOutcome = "internal_failure"
)

const msgSubmitInternal = "Failed to process quiz answers due to an internal error."

// SubmitResult is returned for every submission, including failed ones.
// Record is set only when Success is true.
type SubmitResult struct {
	Success bool                     `json:"success"`
	Outcome SubmitOutcome            `json:"outcome"`
	Message string                   `json:"message"`
	Grade   *GradeResult             `json:"grade,omitempty"`
	Record  *model.UserCompletedQuiz `json:"completedRecord,omitempty"`
}

type CompletionService struct {
	Quizzes     QuizStore
	Completions CompletionStore
	now         func() time.Time
}

func NewCompletionService(quizzes QuizStore, completions CompletionStore) *CompletionService {
	return &CompletionService{
		Quizzes:     quizzes,
		Completions: completions,
		now:         time.Now,
	}
}

// Submit grades a submission and records the completion when every answer is correct.
// Store failures are logged and reported as OutcomeInternalFailure.
func (s *CompletionService) Submit(ctx context.Context, userID, quizID string, sub Submission) SubmitResult {
	ctx, span := tracing.StartSpan(ctx, "CompletionService.Submit",
		attribute.String("user.id", userID),
		attribute.String("quiz.id", quizID),
	)
	defer span.End()

	res := s.submit(ctx, userID, quizID, sub)

	span.SetAttributes(attribute.String("quiz.outcome", string(res.Outcome)))
	if res.Outcome == OutcomeInternalFailure {
		span.SetStatus(codes.Error, string(res.Outcome))
	}
	monitoring.QuizSubmissions.WithLabelValues(string(res.Outcome)).Inc()
	return res
}

func (s *CompletionService) submit(ctx context.Context, userID, quizID string, sub Submission) SubmitResult {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		logger.Log.Error("load quiz for submission failed",
			zap.String("user_id", userID),
			zap.String("quiz_id", quizID),
			zap.Error(err))
		return SubmitResult{Outcome: OutcomeInternalFailure, Message: msgSubmitInternal}
	}
	if quiz == nil {
		return SubmitResult{
			Outcome: OutcomeQuizNotFound,
			Message: fmt.Sprintf("Quiz with ID %s was not found.", quizID),
		}
	}
	if len(quiz.Questions) == 0 {
		return SubmitResult{Outcome: OutcomeNoQuestions, Message: "The quiz has no questions."}
	}

	grade := Grade(quiz.Questions, sub)
	if !grade.AllCorrect {
		if grade.MissingIndex >= 0 {
			logger.Log.Warn("submission is missing an answer",
				zap.String("quiz_id", quizID),
				zap.Int("question_index", grade.MissingIndex))
			return SubmitResult{
				Outcome: OutcomeIncomplete,
				Grade:   &grade,
				Message: fmt.Sprintf("Missing answer for question %d. You answered %d of %d questions correctly. The quiz was not completed.",
					grade.MissingIndex+1, grade.CorrectCount, grade.TotalCount),
			}
		}
		return SubmitResult{
			Outcome: OutcomeIncorrect,
			Grade:   &grade,
			Message: fmt.Sprintf("Incorrect answers. You answered %d of %d questions correctly. The quiz was not completed.",
				grade.CorrectCount, grade.TotalCount),
		}
	}

	rec, created, err := s.MarkCompleted(ctx, userID, quizID)
	if err != nil {
		logger.Log.Error("mark quiz completed failed",
			zap.String("user_id", userID),
			zap.String("quiz_id", quizID),
			zap.Error(err))
		return SubmitResult{Outcome: OutcomeInternalFailure, Grade: &grade, Message: msgSubmitInternal}
	}

	if !created {
		return SubmitResult{
			Success: true,
			Outcome: OutcomeAlreadyCompleted,
			Grade:   &grade,
			Record:  rec,
			Message: "Quiz already completed. All answers are correct.",
		}
	}
	logger.Log.Info("quiz completed", zap.String("user_id", userID), zap.String("quiz_id", quizID))
	return SubmitResult{
		Success: true,
		Outcome: OutcomeCompleted,
		Grade:   &grade,
		Record:  rec,
		Message: "Quiz completed successfully! All answers are correct.",
	}
}

// MarkCompleted inserts the completion unless one exists. created is false when
// the returned record already existed, including when a concurrent request won.
func (s *CompletionService) MarkCompleted(ctx context.Context, userID, quizID string) (*model.UserCompletedQuiz, bool, error) {
	existing, err := s.Completions.FindByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, false, fmt.Errorf("find completion: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	rec := &model.UserCompletedQuiz{
		UserID:      userID,
		QuizID:      quizID,
		CompletedAt: s.now(),
	}
	inserted, err := s.Completions.InsertIfAbsent(ctx, rec)
	if err != nil {
		return nil, false, fmt.Errorf("insert completion: %w", err)
	}
	if inserted {
		return rec, true, nil
	}

	existing, err = s.Completions.FindByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, false, fmt.Errorf("find completion after conflict: %w", err)
	}
	if existing == nil {
		return nil, false, fmt.Errorf("completion for user %s quiz %s vanished after conflict", userID, quizID)
	}
	return existing, false, nil
}

func (s *CompletionService) CompletionStatus(ctx context.Context, userID, quizID string) (bool, error) {
	rec, err := s.Completions.FindByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return false, fmt.Errorf("completion status: %w", err)
	}
	return rec != nil, nil
}

// CompletedQuizzesForUser lists completions oldest first.
func (s *CompletionService) CompletedQuizzesForUser(ctx context.Context, userID string) ([]model.UserCompletedQuiz, error) {
	recs, err := s.Completions.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	if recs == nil {
		recs = []model.UserCompletedQuiz{}
	}
	return recs, nil
}
