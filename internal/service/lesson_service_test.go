package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music_learning_backend/internal/model"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/util"
)

func TestLessonServiceCreateGetAttach(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewQuizRepository(db))

	err := svc.Create(ctx, &model.Lesson{Title: ""})
	assert.ErrorIs(t, err, util.ErrInvalidLesson)

	lesson := &model.Lesson{Title: "Rhythm", Order: 2, TheoryContent: "Quarter notes"}
	require.NoError(t, svc.Create(ctx, lesson))

	got, err := svc.Get(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rhythm", got.Title)
	assert.Empty(t, got.Quizzes)

	quiz := createQuiz(t, db, "A")
	withQuiz, err := svc.AttachQuiz(ctx, lesson.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, withQuiz.Quizzes, 1)
	assert.Equal(t, quiz.ID, withQuiz.Quizzes[0].ID)

	_, err = svc.AttachQuiz(ctx, lesson.ID, "missing")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = svc.AttachQuiz(ctx, "missing", quiz.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
