package repository

import (
	"math/rand"

	"tutor_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionFilter narrows bank lookups; empty fields are ignored.
type QuestionFilter struct {
	Subject string
	Level   model.GradeLevel
	Topic   string
}

func (r *QuestionRepository) filtered(f QuestionFilter) *gorm.DB {
	q := r.DB.Model(&model.Question{})
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if f.Topic != "" {
		q = q.Where("topic = ?", f.Topic)
	}
	return q
}

func (r *QuestionRepository) List(f QuestionFilter, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.filtered(f).Limit(limit).Find(&questions).Error
	return questions, err
}

// Random picks one question uniformly from the filtered set via a random
// offset, which stays portable across MySQL and SQLite.
func (r *QuestionRepository) Random(f QuestionFilter) (*model.Question, error) {
	var count int64
	if err := r.filtered(f).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var question model.Question
	err := r.filtered(f).Offset(rand.Intn(int(count))).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) IncrementFlag(id uint) error {
	res := r.DB.Model(&model.Question{}).
		Where("id = ?", id).
		Update("flag_count", gorm.Expr("flag_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuestionRepository) TopicNames(subject string, level model.GradeLevel) ([]string, error) {
	var names []string
	err := r.DB.Model(&model.Topic{}).
		Where("subject = ? AND level = ? AND is_active = ?", subject, level, true).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}
