package model

import (
	"time"

	"gorm.io/gorm"
)

// UserCompletedQuiz 记录用户成功完成（全部答对）的测验，同一用户同一测验至多一条
// swagger:model UserCompletedQuiz
type UserCompletedQuiz struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_quiz,priority:1;index" json:"userId"`
	QuizID      string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_quiz,priority:2" json:"quizId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (UserCompletedQuiz) TableName() string {
	return "user_completed_quizzes"
}

func (c *UserCompletedQuiz) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = GenerateUUID()
	}
	return nil
}
