package model

// Topic is a curated syllabus entry for one subject and level.
// swagger:model Topic
type Topic struct {
	BaseModel
	Name     string     `gorm:"size:100;not null;uniqueIndex:idx_topic_subject_level" json:"name"`
	Subject  string     `gorm:"size:20;not null;uniqueIndex:idx_topic_subject_level" json:"subject"`
	Level    GradeLevel `gorm:"size:10;not null;uniqueIndex:idx_topic_subject_level" json:"level"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
}

func (Topic) TableName() string {
	return "topics"
}
