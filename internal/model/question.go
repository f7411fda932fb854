package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ExamID           uint           `json:"exam_id" gorm:"not null;index"`
	Text             string         `json:"text" gorm:"type:text;not null"`
	Image            *string        `json:"image,omitempty"`
	Options          []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ExplanationText  *string        `json:"explanation_text,omitempty" gorm:"type:text"`
	ExplanationImage *string        `json:"explanation_image,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

type Option struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Text       string    `json:"text" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CorrectOption returns the option flagged correct, or nil when authoring
// never marked one.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}
