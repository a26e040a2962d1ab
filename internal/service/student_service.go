package service

import (
	"errors"
	"fmt"
	"strings"

	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"

	"gorm.io/gorm"
)

// joinCodeAttempts bounds the resample loop. With a 36^6 code space the
// loop practically never retries; the bound only protects against a
// misbehaving store.
const joinCodeAttempts = 10

type StudentService struct {
	StudentRepo *repository.StudentRepository
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{StudentRepo: studentRepo}
}

// CreateChild registers a new student profile under the given parent with a
// fresh unique join code and zeroed counters. Codes are sampled until one is
// unused; the existence check does not reserve the code, so losing the
// insert race to the unique index counts as one more sample.
func (s *StudentService) CreateChild(parentID uint, name string, level model.GradeLevel) (*model.StudentProfile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, util.ErrNameRequired
	}
	if !level.Valid() {
		return nil, util.ErrInvalidLevel
	}

	student := &model.StudentProfile{
		ParentID: parentID,
		Name:     strings.TrimSpace(name),
		Level:    level,
	}
	for i := 0; i < joinCodeAttempts; i++ {
		code, err := util.RandomJoinCode()
		if err != nil {
			return nil, err
		}
		exists, err := s.StudentRepo.JoinCodeExists(code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		student.JoinCode = code
		err = s.StudentRepo.Create(student)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not find a free join code after %d attempts", joinCodeAttempts)
}

func (s *StudentService) ListChildren(parentID uint) ([]model.StudentProfile, error) {
	return s.StudentRepo.ListByParent(parentID)
}

// DeleteChild removes a profile and its quiz history. The profile must
// belong to parentID; anything else reads as not found.
func (s *StudentService) DeleteChild(parentID, childID uint) (*model.StudentProfile, error) {
	student, err := s.StudentRepo.FindByIDAndParent(childID, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if err := s.StudentRepo.DeleteWithSessions(student); err != nil {
		return nil, err
	}
	return student, nil
}

// ResolveJoinCode looks up the live profile for a join code, with the
// owning parent preloaded for the login flow. Codes are stored uppercase.
func (s *StudentService) ResolveJoinCode(code string) (*model.StudentProfile, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, util.ErrInvalidJoinCode
	}

	student, err := s.StudentRepo.FindByJoinCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidJoinCode
		}
		return nil, err
	}
	return student, nil
}

// AuthorizeParent gates profile and progress access to the owning parent.
// It returns the profile on success so callers don't re-fetch it.
func (s *StudentService) AuthorizeParent(parentID, studentID uint) (*model.StudentProfile, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	if student.ParentID != parentID {
		return nil, util.ErrPermissionDenied
	}
	return student, nil
}
