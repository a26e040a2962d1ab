package model

// Question is one entry in the question bank.
// swagger:model Question
type Question struct {
	BaseModel
	Subject string     `gorm:"size:20;not null;index:idx_question_subject_level" json:"subject"`
	Level   GradeLevel `gorm:"size:10;not null;index:idx_question_subject_level" json:"level"`
	Topic   string     `gorm:"size:100;not null;index" json:"topic"`

	QuestionText     string   `gorm:"type:text;not null" json:"question_text"`
	IsMultipleChoice bool     `gorm:"default:true" json:"is_multiple_choice"`
	Options          []string `gorm:"serializer:json" json:"options"`
	CorrectAnswer    string   `gorm:"size:500;not null" json:"correct_answer"`
	Explanation      string   `gorm:"type:text" json:"explanation"`
	Difficulty       string   `gorm:"size:20;default:'medium'" json:"difficulty"`

	// Provenance for imported questions.
	Source    string `gorm:"size:100" json:"source,omitempty"`
	SourceID  string `gorm:"size:100" json:"source_id,omitempty"`
	License   string `gorm:"size:100" json:"license,omitempty"`
	FlagCount int    `gorm:"default:0" json:"flag_count"`
}

func (Question) TableName() string {
	return "questions"
}
