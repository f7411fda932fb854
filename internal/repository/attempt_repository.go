package repository

import (
	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	FindByUserAndExam(userID, examID uint) (*model.Attempt, error)
	FindByUserAndExamWithDetails(userID, examID uint) (*model.Attempt, error)
	FindAllByUser(userID uint) ([]model.Attempt, error)
	ExistsByUserAndExam(userID, examID uint) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByUserAndExam(userID, examID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("user_id = ? AND exam_id = ?", userID, examID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByUserAndExamWithDetails(userID, examID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Exam").
		Preload("Answers").
		Where("user_id = ? AND exam_id = ?", userID, examID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Exam").
		Preload("Answers").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// ExistsByUserAndExam is the cheap pre-check; the unique index on
// (user_id, exam_id) remains the authoritative guard at insert time.
func (r *attemptRepository) ExistsByUserAndExam(userID, examID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Count(&count).Error
	return count > 0, err
}
