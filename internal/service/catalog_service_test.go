package service

import (
	"errors"
	"testing"

	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewSubjectRepository(db),
		repository.NewChapterRepository(db),
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func TestCreateQuestionRequiresSingleCorrectOption(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 0)
	svc := newCatalogService(db)

	noCorrect := dto.QuestionCreateDTO{
		Text: "2 + 2 = ?",
		Options: []dto.OptionCreateDTO{
			{Text: "3"},
			{Text: "5"},
		},
	}
	if _, err := svc.CreateQuestion(exam.ID, noCorrect); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("CreateQuestion error = %v, want ErrInvalidQuestion", err)
	}

	twoCorrect := dto.QuestionCreateDTO{
		Text: "2 + 2 = ?",
		Options: []dto.OptionCreateDTO{
			{Text: "4", IsCorrect: true},
			{Text: "four", IsCorrect: true},
		},
	}
	if _, err := svc.CreateQuestion(exam.ID, twoCorrect); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("CreateQuestion error = %v, want ErrInvalidQuestion", err)
	}

	valid := dto.QuestionCreateDTO{
		Text: "2 + 2 = ?",
		Options: []dto.OptionCreateDTO{
			{Text: "4", IsCorrect: true},
			{Text: "5"},
		},
	}
	question, err := svc.CreateQuestion(exam.ID, valid)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if len(question.Options) != 2 {
		t.Errorf("options length = %d, want 2", len(question.Options))
	}
}

func TestCreateQuestionUnknownExam(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	req := dto.QuestionCreateDTO{
		Text:    "orphan",
		Options: []dto.OptionCreateDTO{{Text: "a", IsCorrect: true}, {Text: "b"}},
	}
	if _, err := svc.CreateQuestion(9999, req); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("CreateQuestion error = %v, want ErrExamNotFound", err)
	}
}

func TestUserQuestionViewStripsAnswerKey(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 3)
	svc := NewUserExamService(repository.NewExamRepository(db), repository.NewQuestionRepository(db))

	questions, err := svc.GetExamQuestions(exam.ID)
	if err != nil {
		t.Fatalf("GetExamQuestions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("questions length = %d, want 3", len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != 2 {
			t.Errorf("question %d options = %d, want 2", q.ID, len(q.Options))
		}
		// Options are bare strings; there is nothing marking the correct one.
		for _, opt := range q.Options {
			if opt == "" {
				t.Errorf("question %d has empty option text", q.ID)
			}
		}
	}
}

func TestGetPublishedExamsFiltersDrafts(t *testing.T) {
	db := newTestDB(t)
	published, _ := seedExam(t, db, 100, 10, 0)
	draft, _ := seedExam(t, db, 100, 10, 0)
	if err := db.Model(draft).Update("is_published", false).Error; err != nil {
		t.Fatalf("unpublish draft: %v", err)
	}
	svc := NewUserExamService(repository.NewExamRepository(db), repository.NewQuestionRepository(db))

	exams, err := svc.GetPublishedExams()
	if err != nil {
		t.Fatalf("GetPublishedExams: %v", err)
	}
	if len(exams) != 1 {
		t.Fatalf("exams length = %d, want 1", len(exams))
	}
	if exams[0].ID != published.ID {
		t.Errorf("exam id = %d, want %d", exams[0].ID, published.ID)
	}
}
