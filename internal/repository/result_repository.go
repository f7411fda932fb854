package repository

import (
	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

// SubjectRollup aggregates one user's results per subject.
type SubjectRollup struct {
	SubjectID      *uint
	TotalExams     int
	AvgPercentage  float64
	BestPercentage float64
}

// ExamRollup aggregates all results per exam.
type ExamRollup struct {
	ExamID            uint
	TotalAttempts     int
	AvgPercentage     float64
	HighestPercentage float64
}

type ResultRepository interface {
	LeaderboardByExam(examID uint, limit int) ([]model.Result, error)
	RollupByUser(userID uint) ([]SubjectRollup, error)
	RollupByExam() ([]ExamRollup, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// LeaderboardByExam ranks results by score descending; ties go to the faster
// time. Reads the storage engine's default committed state, no locking.
func (r *resultRepository) LeaderboardByExam(examID uint, limit int) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Where("exam_id = ?", examID).
		Order("score DESC, time_taken ASC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) RollupByUser(userID uint) ([]SubjectRollup, error) {
	var rollups []SubjectRollup
	err := r.db.Model(&model.Result{}).
		Select("subject_id, COUNT(*) as total_exams, AVG(percentage) as avg_percentage, MAX(percentage) as best_percentage").
		Where("user_id = ?", userID).
		Group("subject_id").
		Scan(&rollups).Error
	if err != nil {
		return nil, err
	}
	return rollups, nil
}

func (r *resultRepository) RollupByExam() ([]ExamRollup, error) {
	var rollups []ExamRollup
	err := r.db.Model(&model.Result{}).
		Select("exam_id, COUNT(*) as total_attempts, AVG(percentage) as avg_percentage, MAX(percentage) as highest_percentage").
		Group("exam_id").
		Scan(&rollups).Error
	if err != nil {
		return nil, err
	}
	return rollups, nil
}
