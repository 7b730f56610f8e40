package model

// UserRecording 用户针对某节课提交的录音，同一用户同一课程只保留一条
// swagger:model UserRecording
type UserRecording struct {
	UUIDBase
	UserID          string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson,priority:1;index" json:"userId"`
	LessonID        string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson,priority:2" json:"lessonId"`
	AudioURL        string  `gorm:"size:500;not null" json:"audioUrl"`
	DurationSeconds float64 `gorm:"default:0" json:"durationSeconds"`
}

func (UserRecording) TableName() string {
	return "user_recordings"
}

// RecordingWithLesson is a recording joined with the lesson it belongs to.
// LessonDetails is nil when the lesson no longer exists.
type RecordingWithLesson struct {
	UserRecording
	LessonDetails *Lesson `json:"lessonDetails,omitempty"`
}
