package repository

import (
	"time"

	"tutor_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.QuizSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

// TopicProgress is one aggregated row of a student's history for a topic.
type TopicProgress struct {
	Topic          string    `json:"topic"`
	TotalQuestions int64     `json:"total_questions"`
	CorrectAnswers int64     `json:"correct_answers"`
	Accuracy       float64   `json:"accuracy"`
	LastAttempt    time.Time `json:"last_attempt"`
}

// AggregateByTopic groups a student's sessions by topic. Topics with no
// sessions produce no row, so accuracy is never computed over an empty set.
// The last-attempt timestamp is read off the column in a second query per
// topic; aggregating it loses the column's declared type on some drivers.
func (r *SessionRepository) AggregateByTopic(studentID uint) ([]TopicProgress, error) {
	var rows []TopicProgress
	err := r.DB.Model(&model.QuizSession{}).
		Select(`topic,
			COUNT(*) AS total_questions,
			SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) AS correct_answers`).
		Where("student_id = ?", studentID).
		Group("topic").
		Order("topic").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		var last model.QuizSession
		err := r.DB.Select("created_at").
			Where("student_id = ? AND topic = ?", studentID, rows[i].Topic).
			Order("created_at DESC").
			First(&last).Error
		if err != nil {
			return nil, err
		}
		rows[i].LastAttempt = last.CreatedAt
	}
	return rows, nil
}
