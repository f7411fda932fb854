package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	ChapterID      uint           `json:"chapter_id" gorm:"not null;index"`
	Chapter        Chapter        `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	Duration       int            `json:"duration" gorm:"default:30"` // minutes
	TotalMarks     float64        `json:"total_marks" gorm:"default:100"`
	TotalQuestions int            `json:"total_questions" gorm:"default:10"`
	Difficulty     string         `json:"difficulty" gorm:"default:'medium'"` // "easy", "medium", "hard"
	IsPublished    bool           `json:"is_published" gorm:"default:false"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
