package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"
	"tutor_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Topic lists are read-mostly reference data, so they sit in Redis for a
// short window before hitting the bank again.
const topicCacheTTL = 5 * time.Minute

// CatalogService fronts the question bank. Callers never reach into the
// bank tables directly, so the seeded fixture can be swapped for an
// imported corpus without touching quiz or controller code.
type CatalogService struct {
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
}

func NewCatalogService(questionRepo *repository.QuestionRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		QuestionRepo: questionRepo,
		Redis:        rdb,
	}
}

func (s *CatalogService) Topics(ctx context.Context, subject string, level model.GradeLevel) ([]string, error) {
	key := fmt.Sprintf("topics:%s:%s", subject, level)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var names []string
			if json.Unmarshal([]byte(cached), &names) == nil {
				return names, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Topic cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	names, err := s.QuestionRepo.TopicNames(subject, level)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(names); err == nil {
			if err := s.Redis.Set(ctx, key, payload, topicCacheTTL).Err(); err != nil {
				logger.Log.Warn("Topic cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return names, nil
}

func (s *CatalogService) RandomQuestion(subject string, level model.GradeLevel, topic string) (*model.Question, error) {
	question, err := s.QuestionRepo.Random(repository.QuestionFilter{
		Subject: subject,
		Level:   level,
		Topic:   topic,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoQuestions
		}
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) ListQuestions(f repository.QuestionFilter, limit int) ([]model.Question, error) {
	return s.QuestionRepo.List(f, limit)
}

func (s *CatalogService) FlagQuestion(id uint) error {
	err := s.QuestionRepo.IncrementFlag(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	}
	return err
}
