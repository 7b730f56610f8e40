package service

import (
	"context"
	"fmt"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/logger"
	"music_learning_backend/pkg/monitoring"
	"music_learning_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// SaveRecordingResult carries the stored recording. ReplacedAudioURL is the
// previous audio URL when an existing recording was overwritten.
type SaveRecordingResult struct {
	Recording        *model.UserRecording
	Created          bool
	ReplacedAudioURL string
}

type RecordingService struct {
	Recordings RecordingStore
	Lessons    LessonStore
}

func NewRecordingService(recordings RecordingStore, lessons LessonStore) *RecordingService {
	return &RecordingService{
		Recordings: recordings,
		Lessons:    lessons,
	}
}

// SaveRecording keeps exactly one recording per (user, lesson), replacing the audio of an existing one.
func (s *RecordingService) SaveRecording(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) (res *SaveRecordingResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "RecordingService.SaveRecording",
		attribute.String("user.id", userID),
		attribute.String("lesson.id", lessonID),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}

	created, replaced, err := s.writeRecording(ctx, userID, lessonID, audioURL, durationSeconds)
	if err != nil {
		return nil, err
	}

	saved, err := s.Recordings.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("reload recording: %w", err)
	}
	if saved == nil {
		logger.Log.Error("recording missing right after upsert",
			zap.String("user_id", userID),
			zap.String("lesson_id", lessonID))
		return nil, util.ErrRecordingUpsertInconsistent
	}

	res = &SaveRecordingResult{Recording: saved, Created: created}
	op := "created"
	if !created {
		op = "replaced"
		if replaced != audioURL {
			res.ReplacedAudioURL = replaced
		}
	}
	monitoring.RecordingSaves.WithLabelValues(op).Inc()
	span.SetAttributes(attribute.String("recording.op", op))

	logger.Log.Info("recording saved",
		zap.String("recording_id", saved.ID),
		zap.String("user_id", userID),
		zap.String("lesson_id", lessonID),
		zap.String("op", op))
	return res, nil
}

const maxRecordingWriteAttempts = 3

// writeRecording stores audioURL for (user, lesson) and returns the audio URL
// it overwrote. Each attempt only writes over the exact row it read, so two
// concurrent uploads never both claim the same replaced file.
func (s *RecordingService) writeRecording(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) (created bool, replaced string, err error) {
	for attempt := 0; attempt < maxRecordingWriteAttempts; attempt++ {
		previous, err := s.Recordings.FindByUserAndLesson(ctx, userID, lessonID)
		if err != nil {
			return false, "", fmt.Errorf("find recording: %w", err)
		}

		if previous == nil {
			inserted, err := s.Recordings.InsertIfAbsent(ctx, userID, lessonID, audioURL, durationSeconds)
			if err != nil {
				return false, "", fmt.Errorf("insert recording: %w", err)
			}
			if inserted {
				return true, "", nil
			}
			continue
		}

		swapped, err := s.Recordings.ReplaceAudio(ctx, previous.ID, previous.AudioURL, audioURL, durationSeconds)
		if err != nil {
			return false, "", fmt.Errorf("replace recording: %w", err)
		}
		if swapped {
			return false, previous.AudioURL, nil
		}
	}

	// 竞争过于激烈，直接覆盖，被替换的文件无法确定
	logger.Log.Warn("recording write contended, previous audio unknown",
		zap.String("user_id", userID),
		zap.String("lesson_id", lessonID))
	if err := s.Recordings.Upsert(ctx, userID, lessonID, audioURL, durationSeconds); err != nil {
		return false, "", fmt.Errorf("upsert recording: %w", err)
	}
	return false, audioURL, nil
}

// RecordingsForUser lists the user's recordings newest first with their lessons.
func (s *RecordingService) RecordingsForUser(ctx context.Context, userID string) ([]model.RecordingWithLesson, error) {
	recs, err := s.Recordings.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	return s.withLessons(ctx, recs)
}

func (s *RecordingService) RecordingsForLessonAndUser(ctx context.Context, userID, lessonID string) ([]model.RecordingWithLesson, error) {
	recs, err := s.Recordings.FindByUserAndLessonList(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list recordings for lesson: %w", err)
	}
	return s.withLessons(ctx, recs)
}

// withLessons attaches lesson details with a single batched lookup.
func (s *RecordingService) withLessons(ctx context.Context, recs []model.UserRecording) ([]model.RecordingWithLesson, error) {
	out := make([]model.RecordingWithLesson, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}

	seen := make(map[string]struct{}, len(recs))
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.LessonID]; ok {
			continue
		}
		seen[r.LessonID] = struct{}{}
		ids = append(ids, r.LessonID)
	}

	lessons, err := s.Lessons.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}

	for _, r := range recs {
		out = append(out, model.RecordingWithLesson{
			UserRecording: r,
			LessonDetails: lessons[r.LessonID],
		})
	}
	return out, nil
}

func (s *RecordingService) GetRecording(ctx context.Context, id string) (*model.UserRecording, error) {
	rec, err := s.Recordings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find recording: %w", err)
	}
	if rec == nil {
		return nil, util.ErrRecordingNotFound
	}
	return rec, nil
}

// DeleteRecording removes the recording if requesterID owns it and returns
// the deleted row so the caller can remove the audio asset.
func (s *RecordingService) DeleteRecording(ctx context.Context, recordingID, requesterID string) (*model.UserRecording, error) {
	rec, err := s.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != requesterID {
		logger.Log.Warn("recording delete denied",
			zap.String("recording_id", recordingID),
			zap.String("owner_id", rec.UserID),
			zap.String("requester_id", requesterID))
		return nil, util.ErrNotRecordingOwner
	}

	if err := s.Recordings.Delete(ctx, recordingID); err != nil {
		return nil, fmt.Errorf("delete recording: %w", err)
	}
	return rec, nil
}
