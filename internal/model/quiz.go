package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Quiz is a set of questions ordered by QuizQuestion.Position.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        string         `gorm:"type:varchar(36);index:idx_quiz_position,unique" json:"-"`
	Position      int            `gorm:"index:idx_quiz_position,unique" json:"position"`
	QuestionText  string         `gorm:"type:text;not null" json:"questionText"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `gorm:"size:500" json:"correctAnswer,omitempty"`
	ImageURL      string         `gorm:"size:500" json:"imageUrl,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// OptionList decodes Options. A malformed column yields nil.
func (q *QuizQuestion) OptionList() []string {
	var opts []string
	if len(q.Options) == 0 {
		return nil
	}
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes opts into the JSON column.
func (q *QuizQuestion) SetOptions(opts []string) {
	if opts == nil {
		opts = []string{}
	}
	b, _ := json.Marshal(opts)
	q.Options = datatypes.JSON(b)
}
