package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/util"
)

func newQuizService(t *testing.T) (*QuizService, *miniredis.Miniredis) {
	t.Helper()
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.NewQuizRepository(db)
	return NewQuizService(repo, repository.NewQuizCache(client, repo, time.Minute)), mr
}

func sampleQuizInput() QuizInput {
	return QuizInput{
		Title: "Note names",
		Questions: []QuestionInput{
			{QuestionText: "First line of the treble staff?", Options: []string{"E", "F"}, CorrectAnswer: "E"},
			{QuestionText: "Top line of the treble staff?", Options: []string{"F", "G"}, CorrectAnswer: "F"},
		},
	}
}

func TestQuizServiceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuizService(t)

	quiz, err := svc.Create(ctx, sampleQuizInput())
	require.NoError(t, err)
	require.NotEmpty(t, quiz.ID)

	got, err := svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Note names", got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "E", got.Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"F", "G"}, got.Questions[1].OptionList())

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestQuizServiceCreateValidates(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.Create(context.Background(), QuizInput{Title: "  "})
	assert.ErrorIs(t, err, util.ErrInvalidQuiz)

	in := sampleQuizInput()
	in.Questions[1].CorrectAnswer = ""
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, util.ErrInvalidQuiz)
}

func TestQuizServiceCorrectAnswerNeedNotBeAnOption(t *testing.T) {
	svc, _ := newQuizService(t)
	in := QuizInput{Title: "Free text", Questions: []QuestionInput{{QuestionText: "Composer of the Goldberg Variations?", CorrectAnswer: "Bach"}}}

	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestQuizServiceUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, mr := newQuizService(t)

	quiz, err := svc.Create(ctx, sampleQuizInput())
	require.NoError(t, err)
	_, err = svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("quiz:"+quiz.ID))

	updated, err := svc.Update(ctx, quiz.ID, QuizInput{
		Title:     "Bass clef",
		Questions: []QuestionInput{{QuestionText: "Bottom line?", CorrectAnswer: "G"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bass clef", updated.Title)
	assert.False(t, mr.Exists("quiz:"+quiz.ID))

	got, err := svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "G", got.Questions[0].CorrectAnswer)

	_, err = svc.Update(ctx, "missing", sampleQuizInput())
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestQuizServiceListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, mr := newQuizService(t)

	quiz, err := svc.Create(ctx, sampleQuizInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, QuizInput{Title: "Rhythm", Questions: []QuestionInput{{QuestionText: "Beats in 3/4?", CorrectAnswer: "3"}}})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("quiz:"+quiz.ID))

	require.NoError(t, svc.Delete(ctx, quiz.ID))
	assert.False(t, mr.Exists("quiz:"+quiz.ID))

	_, err = svc.Get(ctx, quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	all, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Rhythm", all[0].Title)

	assert.ErrorIs(t, svc.Delete(ctx, quiz.ID), util.ErrQuizNotFound)
}
