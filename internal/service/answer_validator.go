package service

import (
	"fmt"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/util"
	"sort"
	"strconv"
	"strings"
)

// Answer is one submitted answer, aligned with the question at QuestionIndex.
// A null Answer counts as not answered.
type Answer struct {
	QuestionIndex int     `json:"questionIndex"`
	Answer        *string `json:"answer"`
}

// Submission is a validated set of answers keyed by question position.
type Submission struct {
	answers map[int]string
}

// NewSubmission rejects empty input, negative indices and duplicate indices.
// Indices past the end of the quiz are kept and ignored when grading. Null
// answers are dropped so grading sees them as missing.
func NewSubmission(answers []Answer) (Submission, error) {
	if len(answers) == 0 {
		return Submission{}, fmt.Errorf("%w: no answers", util.ErrMalformedSubmission)
	}
	m := make(map[int]string, len(answers))
	seen := make(map[int]struct{}, len(answers))
	for _, a := range answers {
		if a.QuestionIndex < 0 {
			return Submission{}, fmt.Errorf("%w: negative question index %d", util.ErrMalformedSubmission, a.QuestionIndex)
		}
		if _, dup := seen[a.QuestionIndex]; dup {
			return Submission{}, fmt.Errorf("%w: duplicate question index %d", util.ErrMalformedSubmission, a.QuestionIndex)
		}
		seen[a.QuestionIndex] = struct{}{}
		if a.Answer == nil {
			continue
		}
		m[a.QuestionIndex] = *a.Answer
	}
	return Submission{answers: m}, nil
}

// AnswersFromIndexMap converts the {"0": "...", "1": null} form.
// Keys must be decimal integers. The result is sorted by index.
func AnswersFromIndexMap(raw map[string]*string) ([]Answer, error) {
	out := make([]Answer, 0, len(raw))
	for key, value := range raw {
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("%w: question key %q is not an index", util.ErrMalformedSubmission, key)
		}
		out = append(out, Answer{QuestionIndex: idx, Answer: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionIndex < out[j].QuestionIndex })
	return out, nil
}

func (s Submission) Answer(index int) (string, bool) {
	a, ok := s.answers[index]
	return a, ok
}

func (s Submission) Len() int {
	return len(s.answers)
}

// GradeResult is the outcome of Grade. MissingIndex is -1 unless grading
// stopped on a missing answer.
type GradeResult struct {
	AllCorrect   bool `json:"allCorrect"`
	CorrectCount int  `json:"correctCount"`
	TotalCount   int  `json:"totalCount"`
	MissingIndex int  `json:"missingIndex"`
}

// Grade walks questions in order. A missing answer fails the submission and
// stops grading; a wrong answer fails it but grading continues.
func Grade(questions []model.QuizQuestion, sub Submission) GradeResult {
	res := GradeResult{
		AllCorrect:   true,
		TotalCount:   len(questions),
		MissingIndex: -1,
	}

	for i, q := range questions {
		answer, ok := sub.Answer(i)
		if !ok {
			res.AllCorrect = false
			res.MissingIndex = i
			break
		}
		if answersMatch(answer, q.CorrectAnswer) {
			res.CorrectCount++
		} else {
			res.AllCorrect = false
		}
	}

	if len(questions) == 0 {
		res.AllCorrect = false
	}
	return res
}

func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
