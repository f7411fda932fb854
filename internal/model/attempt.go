package model

import "time"

// Attempt is a single scored submission of answers for one exam by one user.
// Rows are created exactly once and never mutated; the composite unique index
// on (user_id, exam_id) is the authoritative single-attempt guard.
type Attempt struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_attempts_user_exam"`
	ExamID         uint            `json:"exam_id" gorm:"not null;uniqueIndex:idx_attempts_user_exam"`
	Exam           Exam            `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Answers        []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Score          float64         `json:"score" gorm:"default:0"`
	CorrectAnswers int             `json:"correct_answers" gorm:"default:0"`
	TotalQuestions int             `json:"total_questions" gorm:"default:0"` // questions actually matched
	TimeTaken      int             `json:"time_taken" gorm:"default:0"`      // seconds
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type AttemptAnswer struct {
	ID             uint     `gorm:"primarykey" json:"id"`
	AttemptID      uint     `json:"attempt_id" gorm:"not null;index"`
	QuestionID     uint     `json:"question_id" gorm:"not null;index"`
	Question       Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption string   `json:"selected_option" gorm:"not null"`
	IsCorrect      bool     `json:"is_correct" gorm:"default:false"`
}
