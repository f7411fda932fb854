package service

import (
	"errors"
	"testing"

	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

func newAttemptService(db *gorm.DB) AttemptService {
	return NewAttemptService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAttemptRepository(db),
		db,
	)
}

func submission(userID uint, questions []model.Question, correct int) dto.AttemptSubmitDTO {
	req := dto.AttemptSubmitDTO{UserID: userID, TimeTaken: 120}
	for i, q := range questions {
		selected := "right"
		if i >= correct {
			selected = "wrong"
		}
		req.Answers = append(req.Answers, dto.AnswerSubmitDTO{QuestionID: q.ID, SelectedOption: selected})
	}
	return req
}

func TestSubmitScoresAgainstConfiguredTotals(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 10)
	svc := newAttemptService(db)

	detail, err := svc.Submit(1, exam.ID, submission(1, questions, 6))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if detail.Attempt.Score != 60.0 {
		t.Errorf("score = %v, want 60.0", detail.Attempt.Score)
	}
	if detail.Attempt.CorrectAnswers != 6 {
		t.Errorf("correctAnswers = %d, want 6", detail.Attempt.CorrectAnswers)
	}
	if detail.Attempt.TotalQuestions != 10 {
		t.Errorf("totalQuestions = %d, want 10", detail.Attempt.TotalQuestions)
	}
	if len(detail.Feedback) != 10 {
		t.Errorf("feedback length = %d, want 10", len(detail.Feedback))
	}

	// The returned attempt is exactly what was persisted.
	var stored model.Attempt
	if err := db.First(&stored, detail.Attempt.ID).Error; err != nil {
		t.Fatalf("load stored attempt: %v", err)
	}
	if stored.Score != detail.Attempt.Score || stored.CorrectAnswers != detail.Attempt.CorrectAnswers {
		t.Errorf("stored attempt (%v, %d) differs from response (%v, %d)",
			stored.Score, stored.CorrectAnswers, detail.Attempt.Score, detail.Attempt.CorrectAnswers)
	}

	// The denormalized result row commits in the same transaction.
	var result model.Result
	if err := db.Where("user_id = ? AND exam_id = ?", 1, exam.ID).First(&result).Error; err != nil {
		t.Fatalf("load result row: %v", err)
	}
	if result.Percentage != 60.0 {
		t.Errorf("result percentage = %v, want 60.0", result.Percentage)
	}
	if result.SubjectID == nil {
		t.Error("result subject reference not populated")
	}
}

func TestSubmitRejectsSecondAttempt(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 10)
	svc := newAttemptService(db)

	first, err := svc.Submit(7, exam.ID, submission(7, questions, 6))
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err = svc.Submit(7, exam.ID, submission(7, questions, 9))
	if !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("second Submit error = %v, want ErrAlreadyAttempted", err)
	}

	// Original attempt untouched.
	var stored model.Attempt
	if err := db.First(&stored, first.Attempt.ID).Error; err != nil {
		t.Fatalf("load original attempt: %v", err)
	}
	if stored.Score != 60.0 || stored.CorrectAnswers != 6 {
		t.Errorf("original attempt changed: score=%v correct=%d", stored.Score, stored.CorrectAnswers)
	}
}

func TestAttemptUniqueIndexIsAuthoritative(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 1)

	if err := db.Create(&model.Attempt{UserID: 3, ExamID: exam.ID}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := db.Create(&model.Attempt{UserID: 3, ExamID: exam.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestSubmitDropsUnmatchedQuestions(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 3)
	otherExam, otherQuestions := seedExam(t, db, 50, 5, 1)
	svc := newAttemptService(db)

	req := dto.AttemptSubmitDTO{
		UserID: 2,
		Answers: []dto.AnswerSubmitDTO{
			{QuestionID: questions[0].ID, SelectedOption: "right"},
			{QuestionID: otherQuestions[0].ID, SelectedOption: "right"}, // belongs to otherExam
			{QuestionID: questions[1].ID, SelectedOption: "wrong"},
		},
	}

	detail, err := svc.Submit(2, exam.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if detail.Attempt.TotalQuestions != 2 {
		t.Errorf("totalQuestions = %d, want 2 (foreign question dropped)", detail.Attempt.TotalQuestions)
	}
	if detail.Attempt.CorrectAnswers != 1 {
		t.Errorf("correctAnswers = %d, want 1", detail.Attempt.CorrectAnswers)
	}
	// Denominator stays the exam's configured size: 1 correct of 10 nominal.
	if detail.Attempt.Score != 10.0 {
		t.Errorf("score = %v, want 10.0", detail.Attempt.Score)
	}
	if len(detail.Feedback) != 2 {
		t.Fatalf("feedback length = %d, want 2", len(detail.Feedback))
	}
	for _, item := range detail.Feedback {
		if item.QuestionID == otherQuestions[0].ID {
			t.Errorf("feedback contains question from exam %d", otherExam.ID)
		}
	}
}

func TestSubmitAllUnmatchedPersistsZeroScoreAttempt(t *testing.T) {
	db := newTestDB(t)
	exam, _ := seedExam(t, db, 100, 10, 2)
	_, otherQuestions := seedExam(t, db, 50, 5, 1)
	svc := newAttemptService(db)

	// Every answer references another exam's question: all dropped, yet the
	// attempt still persists with nothing resolved.
	req := dto.AttemptSubmitDTO{
		UserID:  14,
		Answers: []dto.AnswerSubmitDTO{{QuestionID: otherQuestions[0].ID, SelectedOption: "right"}},
	}
	detail, err := svc.Submit(14, exam.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if detail.Attempt.Score != 0 || detail.Attempt.CorrectAnswers != 0 || detail.Attempt.TotalQuestions != 0 {
		t.Errorf("attempt = score %v correct %d total %d, want all zero",
			detail.Attempt.Score, detail.Attempt.CorrectAnswers, detail.Attempt.TotalQuestions)
	}
	if len(detail.Feedback) != 0 {
		t.Errorf("feedback length = %d, want 0", len(detail.Feedback))
	}

	var stored model.Attempt
	if err := db.Where("user_id = ? AND exam_id = ?", 14, exam.ID).First(&stored).Error; err != nil {
		t.Fatalf("load stored attempt: %v", err)
	}

	// The attempt is consumed like any other.
	if _, err := svc.Submit(14, exam.ID, req); !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("second Submit error = %v, want ErrAlreadyAttempted", err)
	}
}

func TestSubmitDuplicateAnswersCountOnce(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 2)
	svc := newAttemptService(db)

	req := dto.AttemptSubmitDTO{
		UserID: 15,
		Answers: []dto.AnswerSubmitDTO{
			{QuestionID: questions[0].ID, SelectedOption: "right"},
			{QuestionID: questions[0].ID, SelectedOption: "right"}, // repeat, ignored
			{QuestionID: questions[0].ID, SelectedOption: "wrong"}, // repeat, ignored
			{QuestionID: questions[1].ID, SelectedOption: "wrong"},
		},
	}
	detail, err := svc.Submit(15, exam.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if detail.Attempt.CorrectAnswers != 1 {
		t.Errorf("correctAnswers = %d, want 1 (question scored once)", detail.Attempt.CorrectAnswers)
	}
	if detail.Attempt.TotalQuestions != 2 {
		t.Errorf("totalQuestions = %d, want 2 distinct questions", detail.Attempt.TotalQuestions)
	}
	if detail.Attempt.Score != 10.0 {
		t.Errorf("score = %v, want 10.0", detail.Attempt.Score)
	}
	if len(detail.Attempt.Answers) != 2 {
		t.Errorf("answer records = %d, want 2", len(detail.Attempt.Answers))
	}
	if len(detail.Feedback) != 2 {
		t.Errorf("feedback length = %d, want 2", len(detail.Feedback))
	}
}

func TestSubmitFeedbackFollowsExamOrder(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 4)
	svc := newAttemptService(db)

	// Answer in reverse submission order.
	req := dto.AttemptSubmitDTO{UserID: 4}
	for i := len(questions) - 1; i >= 0; i-- {
		req.Answers = append(req.Answers, dto.AnswerSubmitDTO{QuestionID: questions[i].ID, SelectedOption: "right"})
	}

	detail, err := svc.Submit(4, exam.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for i, item := range detail.Feedback {
		if item.QuestionID != questions[i].ID {
			t.Errorf("feedback[%d].QuestionID = %d, want %d (exam order, not submission order)", i, item.QuestionID, questions[i].ID)
		}
		if item.CorrectOption != "right" {
			t.Errorf("feedback[%d].CorrectOption = %q, want %q", i, item.CorrectOption, "right")
		}
	}
}

func TestSubmitExactTextMatch(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 1)
	svc := newAttemptService(db)

	// Case differs from the stored option text: no normalization, so wrong.
	req := dto.AttemptSubmitDTO{
		UserID:  5,
		Answers: []dto.AnswerSubmitDTO{{QuestionID: questions[0].ID, SelectedOption: "Right"}},
	}
	detail, err := svc.Submit(5, exam.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if detail.Attempt.CorrectAnswers != 0 {
		t.Errorf("correctAnswers = %d, want 0 for case-mismatched option", detail.Attempt.CorrectAnswers)
	}
}

func TestSubmitExamNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	req := dto.AttemptSubmitDTO{
		UserID:  1,
		Answers: []dto.AnswerSubmitDTO{{QuestionID: 1, SelectedOption: "right"}},
	}
	if _, err := svc.Submit(1, 9999, req); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("Submit error = %v, want ErrExamNotFound", err)
	}
}

func TestGetResultByExam(t *testing.T) {
	db := newTestDB(t)
	exam, questions := seedExam(t, db, 100, 10, 2)
	svc := newAttemptService(db)

	if _, err := svc.GetResultByExam(8, exam.ID); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("GetResultByExam error = %v, want ErrAttemptNotFound", err)
	}

	if _, err := svc.Submit(8, exam.ID, submission(8, questions, 2)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	summary, err := svc.GetResultByExam(8, exam.ID)
	if err != nil {
		t.Fatalf("GetResultByExam: %v", err)
	}
	if summary.ExamTitle != exam.Title {
		t.Errorf("exam annotation missing: title = %q", summary.ExamTitle)
	}
	if summary.CorrectAnswers != 2 {
		t.Errorf("correctAnswers = %d, want 2", summary.CorrectAnswers)
	}
}

func TestGetUserResultsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	examA, questionsA := seedExam(t, db, 100, 10, 1)
	examB, questionsB := seedExam(t, db, 100, 10, 1)
	svc := newAttemptService(db)

	if _, err := svc.Submit(9, examA.ID, submission(9, questionsA, 1)); err != nil {
		t.Fatalf("Submit A: %v", err)
	}
	if _, err := svc.Submit(9, examB.ID, submission(9, questionsB, 0)); err != nil {
		t.Fatalf("Submit B: %v", err)
	}

	results, err := svc.GetUserResults(9)
	if err != nil {
		t.Fatalf("GetUserResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results length = %d, want 2", len(results))
	}
	if results[0].CreatedAt.Before(results[1].CreatedAt) {
		t.Error("results not ordered newest first")
	}
}
