package repository

import (
	"time"

	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

type RoutineRepository interface {
	Create(routine *model.Routine) error
	FindByID(id uint) (*model.Routine, error)
	FindAll() ([]model.Routine, error)
	FindUpcoming(from time.Time) ([]model.Routine, error)
	Update(routine *model.Routine) error
	Delete(id uint) error
}

type routineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) Create(routine *model.Routine) error {
	return r.db.Create(routine).Error
}

func (r *routineRepository) FindByID(id uint) (*model.Routine, error) {
	var routine model.Routine
	if err := r.db.Preload("Subject").First(&routine, id).Error; err != nil {
		return nil, err
	}
	return &routine, nil
}

// FindAll returns the whole calendar in chronological order.
func (r *routineRepository) FindAll() ([]model.Routine, error) {
	var routines []model.Routine
	if err := r.db.Preload("Subject").Order("date ASC").Find(&routines).Error; err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *routineRepository) FindUpcoming(from time.Time) ([]model.Routine, error) {
	var routines []model.Routine
	err := r.db.Preload("Subject").
		Where("date >= ?", from).
		Order("date ASC").
		Find(&routines).Error
	if err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *routineRepository) Update(routine *model.Routine) error {
	return r.db.Save(routine).Error
}

func (r *routineRepository) Delete(id uint) error {
	return r.db.Delete(&model.Routine{}, id).Error
}
