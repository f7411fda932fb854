package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDBSeq atomic.Int64
	seedSeq   atomic.Int64
)

// newTestDB opens an isolated in-memory database with the full schema,
// unique indexes included.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:examly_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.Subject{},
		&model.Chapter{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
		&model.Routine{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.Result{},
		&model.ResultAnswer{},
		&model.Payment{},
		&model.Subscription{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedExam creates a subject/chapter/exam hierarchy with the given number of
// questions. Every question gets options "right" (correct) and "wrong".
func seedExam(t *testing.T, db *gorm.DB, totalMarks float64, totalQuestions, questionCount int) (*model.Exam, []model.Question) {
	t.Helper()

	seq := seedSeq.Add(1)
	subject := model.Subject{Name: fmt.Sprintf("Subject %d", seq), Code: fmt.Sprintf("SUB%d", seq)}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	chapter := model.Chapter{Title: "Chapter 1", SubjectID: subject.ID, Order: 1}
	if err := db.Create(&chapter).Error; err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	exam := model.Exam{
		Title:          "Seeded Exam",
		ChapterID:      chapter.ID,
		Duration:       30,
		TotalMarks:     totalMarks,
		TotalQuestions: totalQuestions,
		IsPublished:    true,
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}

	questions := make([]model.Question, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q := model.Question{
			ExamID: exam.ID,
			Text:   fmt.Sprintf("Question %d", i+1),
			Options: []model.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			},
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question %d: %v", i+1, err)
		}
		questions = append(questions, q)
	}
	return &exam, questions
}
