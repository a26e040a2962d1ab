package repository

import (
	"tutor_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.StudentProfile) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.StudentProfile, error) {
	var student model.StudentProfile
	err := r.DB.First(&student, id).Error
	return &student, err
}

// FindByIDAndParent looks up a profile by id scoped to its owner. The
// ownership check lives in the query so a foreign child id is
// indistinguishable from a missing one.
func (r *StudentRepository) FindByIDAndParent(id, parentID uint) (*model.StudentProfile, error) {
	var student model.StudentProfile
	err := r.DB.Where("id = ? AND parent_id = ?", id, parentID).First(&student).Error
	return &student, err
}

func (r *StudentRepository) FindByJoinCode(code string) (*model.StudentProfile, error) {
	var student model.StudentProfile
	err := r.DB.Preload("Parent").Where("join_code = ?", code).First(&student).Error
	return &student, err
}

func (r *StudentRepository) ListByParent(parentID uint) ([]model.StudentProfile, error) {
	var students []model.StudentProfile
	err := r.DB.Where("parent_id = ?", parentID).Find(&students).Error
	return students, err
}

// JoinCodeExists reports whether any profile holds the code, including
// soft-deleted ones, which still occupy the unique index.
func (r *StudentRepository) JoinCodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Unscoped().Model(&model.StudentProfile{}).Where("join_code = ?", code).Count(&count).Error
	return count > 0, err
}

// DeleteWithSessions removes the profile and all of its quiz sessions in
// one transaction.
func (r *StudentRepository) DeleteWithSessions(student *model.StudentProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&model.QuizSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(student).Error
	})
}
