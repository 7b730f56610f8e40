package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrPermissionDenied = errors.New("permission denied")

	ErrQuizNotFound        = errors.New("quiz not found")
	ErrInvalidQuiz         = errors.New("invalid quiz")
	ErrMalformedSubmission = errors.New("malformed submission")

	ErrLessonNotFound              = errors.New("lesson not found")
	ErrInvalidLesson               = errors.New("invalid lesson")
	ErrRecordingNotFound           = errors.New("recording not found")
	ErrNotRecordingOwner           = fmt.Errorf("%w: recording belongs to another user", ErrPermissionDenied)
	ErrRecordingUpsertInconsistent = errors.New("recording upsert left no record")
	ErrInvalidAudioFile            = errors.New("only audio files are allowed")
	ErrInvalidImageFile            = errors.New("only image files are allowed")
	ErrFileTooLarge                = errors.New("file too large")
)
