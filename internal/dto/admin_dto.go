package dto

import "time"

// --- Subject ---

type SubjectCreateDTO struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description,omitempty"`
	Image       *string `json:"image"`
	Price       float64 `json:"price" binding:"min=0"`
	IsPremium   bool    `json:"is_premium"`
}

type SubjectResponseDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Price       float64   `json:"price"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Chapter ---

type ChapterCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	SubjectID   uint   `json:"subject_id" binding:"required"`
	Order       int    `json:"order" binding:"min=1"`
	IsPublished bool   `json:"is_published"`
}

type ChapterResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SubjectID   uint      `json:"subject_id"`
	Order       int       `json:"order"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Exam ---

type ExamCreateDTO struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description,omitempty"`
	ChapterID      uint    `json:"chapter_id" binding:"required"`
	Duration       int     `json:"duration" binding:"required,min=1"` // minutes
	TotalMarks     float64 `json:"total_marks" binding:"required,gt=0"`
	TotalQuestions int     `json:"total_questions" binding:"required,min=1"`
	Difficulty     string  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	IsPublished    bool    `json:"is_published"`
}

type ExamResponseDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ChapterID      uint      `json:"chapter_id"`
	Duration       int       `json:"duration"`
	TotalMarks     float64   `json:"total_marks"`
	TotalQuestions int       `json:"total_questions"`
	Difficulty     string    `json:"difficulty"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
}

// --- Routine ---

type RoutineCreateDTO struct {
	Title     string    `json:"title" binding:"required"`
	SubjectID uint      `json:"subject_id" binding:"required"`
	ChapterID *uint     `json:"chapter_id"`
	ExamID    *uint     `json:"exam_id"`
	Date      time.Time `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"` // "HH:MM"
	Duration  int       `json:"duration" binding:"required,min=1"`
	Notes     string    `json:"notes,omitempty"`
}

type RoutineResponseDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	SubjectID uint      `json:"subject_id"`
	ChapterID *uint     `json:"chapter_id,omitempty"`
	ExamID    *uint     `json:"exam_id,omitempty"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	Duration  int       `json:"duration"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Question ---

type OptionCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateDTO struct {
	Text             string            `json:"text" binding:"required"`
	Image            *string           `json:"image"`
	Options          []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
	ExplanationText  *string           `json:"explanation_text"`
	ExplanationImage *string           `json:"explanation_image"`
}

type OptionResponseDTO struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponseDTO is the admin view: options carry the answer key.
type QuestionResponseDTO struct {
	ID               uint                `json:"id"`
	ExamID           uint                `json:"exam_id"`
	Text             string              `json:"text"`
	Image            *string             `json:"image,omitempty"`
	Options          []OptionResponseDTO `json:"options"`
	ExplanationText  *string             `json:"explanation_text,omitempty"`
	ExplanationImage *string             `json:"explanation_image,omitempty"`
}

// ExamQuestionDTO is the exam-taking view: no answer key, no explanation.
type ExamQuestionDTO struct {
	ID      uint     `json:"id"`
	ExamID  uint     `json:"exam_id"`
	Text    string   `json:"text"`
	Image   *string  `json:"image,omitempty"`
	Options []string `json:"options"`
}
