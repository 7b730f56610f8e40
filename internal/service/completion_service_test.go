package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music_learning_backend/internal/model"
	"music_learning_backend/internal/repository"
)

func newCompletionService(t *testing.T) (*CompletionService, *model.Quiz, func() int64) {
	t.Helper()
	db := newTestDB(t)
	quiz := createQuiz(t, db, "A", "B", "C")
	svc := NewCompletionService(repository.NewQuizRepository(db), repository.NewCompletionRepository(db))
	count := func() int64 {
		var n int64
		require.NoError(t, db.Model(&model.UserCompletedQuiz{}).Count(&n).Error)
		return n
	}
	return svc, quiz, count
}

func TestSubmitAllCorrectCreatesCompletion(t *testing.T) {
	ctx := context.Background()
	svc, quiz, count := newCompletionService(t)

	res := svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, map[string]string{"0": "a ", "1": "B", "2": "c"}))
	assert.True(t, res.Success)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	require.NotNil(t, res.Grade)
	assert.Equal(t, 3, res.Grade.CorrectCount)
	require.NotNil(t, res.Record)
	assert.Equal(t, "user-1", res.Record.UserID)
	assert.Equal(t, quiz.ID, res.Record.QuizID)
	assert.False(t, res.Record.CompletedAt.IsZero())
	assert.Equal(t, int64(1), count())
}

func TestSubmitTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, quiz, count := newCompletionService(t)
	answers := map[string]string{"0": "A", "1": "B", "2": "C"}

	first := svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, answers))
	require.True(t, first.Success)

	second := svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, answers))
	assert.True(t, second.Success)
	assert.Equal(t, OutcomeAlreadyCompleted, second.Outcome)
	require.NotNil(t, second.Record)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, int64(1), count())
}

func TestSubmitWrongAnswer(t *testing.T) {
	ctx := context.Background()
	svc, quiz, count := newCompletionService(t)

	res := svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, map[string]string{"0": "A", "1": "X", "2": "C"}))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeIncorrect, res.Outcome)
	assert.Equal(t, 2, res.Grade.CorrectCount)
	assert.Equal(t, 3, res.Grade.TotalCount)
	assert.Contains(t, res.Message, "2 of 3")
	assert.Nil(t, res.Record)
	assert.Equal(t, int64(0), count())
}

func TestSubmitMissingAnswer(t *testing.T) {
	ctx := context.Background()
	svc, quiz, count := newCompletionService(t)

	res := svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, map[string]string{"0": "A", "2": "C"}))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeIncomplete, res.Outcome)
	assert.Equal(t, 1, res.Grade.MissingIndex)
	assert.Equal(t, int64(0), count())
}

func TestSubmitUnknownQuiz(t *testing.T) {
	svc, _, _ := newCompletionService(t)

	res := svc.Submit(context.Background(), "user-1", "missing-quiz", mustSubmission(t, map[string]string{"0": "A"}))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeQuizNotFound, res.Outcome)
	assert.Contains(t, res.Message, "missing-quiz")
}

func TestSubmitQuizWithoutQuestions(t *testing.T) {
	db := newTestDB(t)
	empty := createQuiz(t, db)
	svc := NewCompletionService(repository.NewQuizRepository(db), repository.NewCompletionRepository(db))

	res := svc.Submit(context.Background(), "user-1", empty.ID, mustSubmission(t, map[string]string{"0": "A"}))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeNoQuestions, res.Outcome)
	assert.Nil(t, res.Grade)
}

func TestCompletionStatusFlipsAfterSuccess(t *testing.T) {
	ctx := context.Background()
	svc, quiz, _ := newCompletionService(t)

	done, err := svc.CompletionStatus(ctx, "user-1", quiz.ID)
	require.NoError(t, err)
	assert.False(t, done)

	svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, map[string]string{"0": "A", "1": "X", "2": "C"}))
	done, err = svc.CompletionStatus(ctx, "user-1", quiz.ID)
	require.NoError(t, err)
	assert.False(t, done)

	svc.Submit(ctx, "user-1", quiz.ID, mustSubmission(t, map[string]string{"0": "A", "1": "B", "2": "C"}))
	done, err = svc.CompletionStatus(ctx, "user-1", quiz.ID)
	require.NoError(t, err)
	assert.True(t, done)

	other, err := svc.CompletionStatus(ctx, "user-2", quiz.ID)
	require.NoError(t, err)
	assert.False(t, other)
}

func TestCompletedQuizzesForUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	q1 := createQuiz(t, db, "A")
	q2 := createQuiz(t, db, "B")
	svc := NewCompletionService(repository.NewQuizRepository(db), repository.NewCompletionRepository(db))

	empty, err := svc.CompletedQuizzesForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.True(t, svc.Submit(ctx, "user-1", q1.ID, mustSubmission(t, map[string]string{"0": "A"})).Success)
	require.True(t, svc.Submit(ctx, "user-1", q2.ID, mustSubmission(t, map[string]string{"0": "B"})).Success)
	require.True(t, svc.Submit(ctx, "user-2", q2.ID, mustSubmission(t, map[string]string{"0": "B"})).Success)

	recs, err := svc.CompletedQuizzesForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.ElementsMatch(t, []string{q1.ID, q2.ID}, []string{recs[0].QuizID, recs[1].QuizID})
}

type failingQuizStore struct{}

func (failingQuizStore) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	return nil, errors.New("connection refused to 10.0.0.7:3306")
}

func TestSubmitStoreErrorIsGenericFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(failingQuizStore{}, repository.NewCompletionRepository(db))

	res := svc.Submit(context.Background(), "user-1", "quiz", mustSubmission(t, map[string]string{"0": "A"}))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeInternalFailure, res.Outcome)
	assert.NotContains(t, res.Message, "10.0.0.7")
}

// racingCompletionStore simulates another request inserting between the lookup and the insert.
type racingCompletionStore struct {
	winner  *model.UserCompletedQuiz
	lookups int
}

func (s *racingCompletionStore) FindByUserAndQuiz(ctx context.Context, userID, quizID string) (*model.UserCompletedQuiz, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, nil
	}
	return s.winner, nil
}

func (s *racingCompletionStore) InsertIfAbsent(ctx context.Context, rec *model.UserCompletedQuiz) (bool, error) {
	return false, nil
}

func (s *racingCompletionStore) FindAllByUser(ctx context.Context, userID string) ([]model.UserCompletedQuiz, error) {
	return []model.UserCompletedQuiz{*s.winner}, nil
}

func TestMarkCompletedLosingRaceReturnsWinner(t *testing.T) {
	winner := &model.UserCompletedQuiz{ID: "winner", UserID: "user-1", QuizID: "quiz-1"}
	store := &racingCompletionStore{winner: winner}
	svc := NewCompletionService(failingQuizStore{}, store)

	rec, created, err := svc.MarkCompleted(context.Background(), "user-1", "quiz-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "winner", rec.ID)
}
