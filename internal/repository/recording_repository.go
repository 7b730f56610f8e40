package repository

import (
	"context"
	"errors"
	"music_learning_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordingRepository struct {
	DB *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{DB: db}
}

func (r *RecordingRepository) FindByID(ctx context.Context, id string) (*model.UserRecording, error) {
	var rec model.UserRecording
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordingRepository) FindByUserAndLesson(ctx context.Context, userID, lessonID string) (*model.UserRecording, error) {
	var rec model.UserRecording
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert inserts or overwrites audio_url and duration for (user, lesson) in one statement.
// The row id and created_at of an existing record are preserved.
func (r *RecordingRepository) Upsert(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) error {
	now := time.Now()
	rec := &model.UserRecording{
		UserID:          userID,
		LessonID:        lessonID,
		AudioURL:        audioURL,
		DurationSeconds: durationSeconds,
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"audio_url", "duration_seconds", "updated_at"}),
		}).
		Create(rec).Error
}

// InsertIfAbsent creates the (user, lesson) row and reports false when one already exists.
func (r *RecordingRepository) InsertIfAbsent(ctx context.Context, userID, lessonID, audioURL string, durationSeconds float64) (bool, error) {
	rec := &model.UserRecording{
		UserID:          userID,
		LessonID:        lessonID,
		AudioURL:        audioURL,
		DurationSeconds: durationSeconds,
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReplaceAudio swaps the audio of recording id only while it still points at
// expectedURL. It reports false when another write got there first.
func (r *RecordingRepository) ReplaceAudio(ctx context.Context, id, expectedURL, audioURL string, durationSeconds float64) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.UserRecording{}).
		Where("id = ? AND audio_url = ?", id, expectedURL).
		Updates(map[string]interface{}{
			"audio_url":        audioURL,
			"duration_seconds": durationSeconds,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindAllByUser lists the user's recordings newest first.
func (r *RecordingRepository) FindAllByUser(ctx context.Context, userID string) ([]model.UserRecording, error) {
	var recs []model.UserRecording
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recs).Error
	return recs, err
}

// FindByUserAndLessonList returns at most one row, as a list.
func (r *RecordingRepository) FindByUserAndLessonList(ctx context.Context, userID, lessonID string) ([]model.UserRecording, error) {
	var recs []model.UserRecording
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at desc").
		Find(&recs).Error
	return recs, err
}

// Delete removes the row permanently.
func (r *RecordingRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&model.UserRecording{}).Error
}
