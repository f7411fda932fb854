package model

import "time"

// Result is the denormalized read-model of a scored attempt used for
// leaderboards and cross-exam reporting. It mirrors the attempt's
// one-per-(user, exam) uniqueness with its own index.
type Result struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_results_user_exam"`
	ExamID      uint           `json:"exam_id" gorm:"not null;uniqueIndex:idx_results_user_exam"`
	Exam        Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	SubjectID   *uint          `json:"subject_id,omitempty" gorm:"index"`
	Score       float64        `json:"score" gorm:"not null"`
	TotalMarks  float64        `json:"total_marks" gorm:"not null"`
	Percentage  float64        `json:"percentage"`
	Answers     []ResultAnswer `json:"answers,omitempty" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TimeTaken   int            `json:"time_taken"` // seconds
	SubmittedAt time.Time      `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ResultAnswer struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	ResultID       uint   `json:"result_id" gorm:"not null;index"`
	QuestionID     uint   `json:"question_id" gorm:"not null"`
	SelectedOption string `json:"selected_option" gorm:"not null"`
	IsCorrect      bool   `json:"is_correct" gorm:"not null"`
}
