package model

// QuizSession records one question asked to a student and, once submitted,
// the answer that was given. Question fields are write-once at creation;
// UserAnswer/IsCorrect transition from unset to set exactly once.
// swagger:model QuizSession
type QuizSession struct {
	BaseModel
	StudentID uint           `gorm:"index;not null" json:"student_id"`
	Student   StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Subject      string `gorm:"size:20;not null" json:"subject"`
	Topic        string `gorm:"size:100;not null" json:"topic"`
	QuestionText string `gorm:"type:text;not null" json:"question_text"`

	CorrectAnswer string `gorm:"size:500;not null" json:"-"`
	Explanation   string `gorm:"type:text" json:"-"`

	UserAnswer *string `gorm:"size:500" json:"user_answer,omitempty"`
	IsCorrect  bool    `gorm:"default:false" json:"is_correct"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// Answered reports whether the session has already been graded.
func (s *QuizSession) Answered() bool {
	return s.UserAnswer != nil
}
