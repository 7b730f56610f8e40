package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"music_learning_backend/internal/model"
	"music_learning_backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "service.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.Lesson{},
		&model.UserCompletedQuiz{},
		&model.UserRecording{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// createQuiz stores a quiz whose questions have the given correct answers.
func createQuiz(t *testing.T, db *gorm.DB, answers ...string) *model.Quiz {
	t.Helper()
	in := QuizInput{Title: "Quiz"}
	for _, a := range answers {
		in.Questions = append(in.Questions, QuestionInput{
			QuestionText:  "Question for " + a,
			Options:       []string{a, "other"},
			CorrectAnswer: a,
		})
	}
	quiz, err := in.toModel()
	require.NoError(t, err)
	require.NoError(t, repository.NewQuizRepository(db).Create(context.Background(), quiz))
	return quiz
}

func createLesson(t *testing.T, db *gorm.DB, title string) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{Title: title, TheoryContent: "theory"}
	require.NoError(t, repository.NewLessonRepository(db).Create(context.Background(), lesson))
	return lesson
}

func strPtr(s string) *string {
	return &s
}

func mustSubmission(t *testing.T, answers map[string]string) Submission {
	t.Helper()
	raw := make(map[string]*string, len(answers))
	for k, v := range answers {
		raw[k] = strPtr(v)
	}
	return mustSubmissionFrom(t, raw)
}

func mustSubmissionFrom(t *testing.T, raw map[string]*string) Submission {
	t.Helper()
	list, err := AnswersFromIndexMap(raw)
	require.NoError(t, err)
	sub, err := NewSubmission(list)
	require.NoError(t, err)
	return sub
}
