package service

import (
	"errors"
	"math"

	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"

	"gorm.io/gorm"
)

// XPReward is granted for every correctly answered question.
const XPReward = 10

type QuizService struct {
	SessionRepo *repository.SessionRepository
	StudentRepo *repository.StudentRepository
	Catalog     *CatalogService
	DB          *gorm.DB
}

func NewQuizService(sessionRepo *repository.SessionRepository, studentRepo *repository.StudentRepository, catalog *CatalogService, db *gorm.DB) *QuizService {
	return &QuizService{
		SessionRepo: sessionRepo,
		StudentRepo: studentRepo,
		Catalog:     catalog,
		DB:          db,
	}
}

// StartedSession is what the client gets back when a question is dealt.
// The correct answer and explanation stay server-side until submission.
type StartedSession struct {
	SessionID    uint     `json:"session_id"`
	Subject      string   `json:"subject"`
	Topic        string   `json:"topic"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

// StartSession deals a random catalog question at the student's own level
// and records it as an unanswered quiz session.
func (s *QuizService) StartSession(studentID uint, subject, topic string) (*StartedSession, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	question, err := s.Catalog.RandomQuestion(subject, student.Level, topic)
	if err != nil {
		return nil, err
	}

	session := &model.QuizSession{
		StudentID:     student.ID,
		Subject:       subject,
		Topic:         topic,
		QuestionText:  question.QuestionText,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &StartedSession{
		SessionID:    session.ID,
		Subject:      session.Subject,
		Topic:        session.Topic,
		QuestionText: session.QuestionText,
		Options:      question.Options,
	}, nil
}

// SessionOwner reports which student a session belongs to, so callers can
// authorize before grading.
func (s *QuizService) SessionOwner(sessionID uint) (uint, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrSessionNotFound
		}
		return 0, err
	}
	return session.StudentID, nil
}

type SubmitResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	XPGained      int    `json:"xp_gained"`
}

// SubmitAnswer grades a session exactly once. The session write and the
// xp/streak counter write happen in one transaction, and the conditional
// update on user_answer IS NULL makes the first submission authoritative
// even under concurrent calls.
func (s *QuizService) SubmitAnswer(sessionID uint, answer string) (*SubmitResult, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.Answered() {
		return nil, util.ErrAlreadyAnswered
	}

	isCorrect := answersMatch(answer, session.CorrectAnswer)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.QuizSession{}).
			Where("id = ? AND user_answer IS NULL", session.ID).
			Updates(map[string]interface{}{
				"user_answer": answer,
				"is_correct":  isCorrect,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadyAnswered
		}

		counters := tx.Model(&model.StudentProfile{}).Where("id = ?", session.StudentID)
		if isCorrect {
			return counters.Updates(map[string]interface{}{
				"xp":     gorm.Expr("xp + ?", XPReward),
				"streak": gorm.Expr("streak + 1"),
			}).Error
		}
		return counters.Update("streak", 0).Error
	})
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: session.CorrectAnswer,
		Explanation:   session.Explanation,
	}
	if isCorrect {
		result.XPGained = XPReward
	}
	return result, nil
}

// answersMatch is the single place grading compares answers. It is an
// exact, case- and whitespace-sensitive string comparison.
func answersMatch(given, correct string) bool {
	return given == correct
}

// ProgressByTopic aggregates a student's graded sessions per topic with
// accuracy rounded to two decimals. Topics with no sessions yield no entry.
func (s *QuizService) ProgressByTopic(studentID uint) ([]repository.TopicProgress, error) {
	rows, err := s.SessionRepo.AggregateByTopic(studentID)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].TotalQuestions > 0 {
			pct := float64(rows[i].CorrectAnswers) / float64(rows[i].TotalQuestions) * 100
			rows[i].Accuracy = math.Round(pct*100) / 100
		}
	}
	return rows, nil
}
