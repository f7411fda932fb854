package repository

import (
	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithChapter(id uint) (*model.Exam, error)
	FindByChapterID(chapterID uint) ([]model.Exam, error)
	FindAllPublished() ([]model.Exam, error)
	Update(exam *model.Exam) error
	Delete(id uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindByIDWithChapter also loads the chapter so the caller can walk up to the
// owning subject.
func (r *examRepository) FindByIDWithChapter(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.Preload("Chapter").First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByChapterID(chapterID uint) ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Where("chapter_id = ?", chapterID).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindAllPublished() ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Where("is_published = ?", true).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) Delete(id uint) error {
	return r.db.Delete(&model.Exam{}, id).Error
}
