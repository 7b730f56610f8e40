package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	Title              string `gorm:"size:255;not null" json:"title"`
	Order              int    `gorm:"default:0" json:"order"`
	TheoryContent      string `gorm:"type:text" json:"theoryContent"`
	SheetMusicImageURL string `gorm:"size:500" json:"sheetMusicImageUrl,omitempty"`
	AudioURL           string `gorm:"size:500" json:"audioUrl,omitempty"`
	Quizzes            []Quiz `gorm:"many2many:lesson_quizzes" json:"quizzes"`
}

func (Lesson) TableName() string {
	return "lessons"
}
