package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoutineStatusUpcoming  = "upcoming"
	RoutineStatusRunning   = "running"
	RoutineStatusCompleted = "completed"
)

// Routine is a scheduled exam sitting published on the study calendar.
type Routine struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `json:"title" gorm:"not null"`
	SubjectID uint           `json:"subject_id" gorm:"not null;index"`
	Subject   Subject        `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	ChapterID *uint          `json:"chapter_id,omitempty"`
	ExamID    *uint          `json:"exam_id,omitempty"`
	Date      time.Time      `json:"date" gorm:"not null;index"`
	StartTime string         `json:"start_time" gorm:"not null"` // "HH:MM"
	Duration  int            `json:"duration" gorm:"not null"`   // minutes
	Status    string         `json:"status" gorm:"default:'upcoming'"` // "upcoming", "running", "completed"
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
