package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

// AttemptService is the evaluation engine: it enforces the single attempt per
// (user, exam), scores a submission against the exam's answer key and returns
// the persisted attempt together with per-question feedback.
type AttemptService interface {
	Submit(userID, examID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error)
	GetUserResults(userID uint) ([]dto.AttemptSummaryDTO, error)
	GetResultByExam(userID, examID uint) (*dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	db           *gorm.DB
}

func NewAttemptService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		db:           db,
	}
}

// Submit evaluates and persists one attempt. Answers referencing questions
// that do not belong to the exam are skipped without error; they count toward
// neither the score nor the feedback. The score denominator is always the
// exam's configured total question count, so a partial submission is scored
// against the exam's nominal size.
func (s *attemptService) Submit(userID, examID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error) {
	exists, err := s.attemptRepo.ExistsByUserAndExam(userID, examID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("examID", examID).Msg("Submit: attempt existence check failed")
		return nil, fmt.Errorf("checking previous attempts: %w", err)
	}
	if exists {
		return nil, ErrAlreadyAttempted
	}

	exam, err := s.examRepo.FindByIDWithChapter(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("loading questions for exam %d: %w", examID, err)
	}
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	// Evaluate in submission order; unmatched questions are dropped silently
	// and repeated answers for the same question keep only the first. A
	// submission that resolves nothing still persists as a zero-score attempt.
	correctCount := 0
	var answerRecords []model.AttemptAnswer
	answered := make(map[uint]bool, len(req.Answers))
	for _, ans := range req.Answers {
		question, ok := questionMap[ans.QuestionID]
		if !ok {
			log.Warn().Uint("questionID", ans.QuestionID).Uint("examID", examID).Msg("Submit: answer references question outside this exam, skipping")
			continue
		}
		if answered[question.ID] {
			log.Warn().Uint("questionID", question.ID).Uint("examID", examID).Msg("Submit: duplicate answer for question, keeping first")
			continue
		}
		answered[question.ID] = true
		isCorrect := false
		if correct := question.CorrectOption(); correct != nil {
			isCorrect = correct.Text == ans.SelectedOption
		}
		if isCorrect {
			correctCount++
		}
		answerRecords = append(answerRecords, model.AttemptAnswer{
			QuestionID:     question.ID,
			SelectedOption: ans.SelectedOption,
			IsCorrect:      isCorrect,
		})
	}

	score := float64(correctCount) * (exam.TotalMarks / float64(exam.TotalQuestions))

	attempt := model.Attempt{
		UserID:         userID,
		ExamID:         examID,
		Answers:        answerRecords,
		Score:          score,
		CorrectAnswers: correctCount,
		TotalQuestions: len(answerRecords),
		TimeTaken:      req.TimeTaken,
	}

	// The attempt and its denormalized result row commit together. The unique
	// indexes on (user_id, exam_id) catch the race two concurrent submissions
	// can win past the pre-check above.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		result := model.Result{
			UserID:      userID,
			ExamID:      examID,
			SubjectID:   subjectOf(exam),
			Score:       score,
			TotalMarks:  exam.TotalMarks,
			Percentage:  score / exam.TotalMarks * 100,
			TimeTaken:   req.TimeTaken,
			SubmittedAt: time.Now(),
		}
		for _, rec := range attempt.Answers {
			result.Answers = append(result.Answers, model.ResultAnswer{
				QuestionID:     rec.QuestionID,
				SelectedOption: rec.SelectedOption,
				IsCorrect:      rec.IsCorrect,
			})
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAttempted
		}
		log.Error().Err(err).Uint("userID", userID).Uint("examID", examID).Msg("Submit: persisting attempt failed")
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}

	return s.buildDetail(&attempt, questions), nil
}

// buildDetail assembles the response: the attempt exactly as persisted plus
// feedback for every resolved question, ordered by the exam's question order
// rather than submission order.
func (s *attemptService) buildDetail(attempt *model.Attempt, questions []model.Question) *dto.AttemptDetailDTO {
	answeredBy := make(map[uint]*model.AttemptAnswer, len(attempt.Answers))
	for i := range attempt.Answers {
		answeredBy[attempt.Answers[i].QuestionID] = &attempt.Answers[i]
	}

	var feedback []dto.FeedbackItemDTO
	for _, q := range questions {
		rec, answered := answeredBy[q.ID]
		if !answered {
			continue
		}
		item := dto.FeedbackItemDTO{
			QuestionID:       q.ID,
			QuestionText:     q.Text,
			QuestionImage:    q.Image,
			IsCorrect:        rec.IsCorrect,
			ExplanationText:  q.ExplanationText,
			ExplanationImage: q.ExplanationImage,
		}
		selected := rec.SelectedOption
		item.SelectedOption = &selected
		if correct := q.CorrectOption(); correct != nil {
			item.CorrectOption = correct.Text
		}
		feedback = append(feedback, item)
	}

	attemptDTO := dto.AttemptDTO{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		ExamID:         attempt.ExamID,
		Score:          attempt.Score,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		TimeTaken:      attempt.TimeTaken,
		CreatedAt:      attempt.CreatedAt,
	}
	for _, rec := range attempt.Answers {
		attemptDTO.Answers = append(attemptDTO.Answers, dto.AnswerRecordDTO{
			QuestionID:     rec.QuestionID,
			SelectedOption: rec.SelectedOption,
			IsCorrect:      rec.IsCorrect,
		})
	}

	return &dto.AttemptDetailDTO{Attempt: attemptDTO, Feedback: feedback}
}

func (s *attemptService) GetUserResults(userID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserResults: repository error")
		return nil, fmt.Errorf("fetching attempts for user %d: %w", userID, err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		summaries = append(summaries, summarize(&attempt))
	}
	return summaries, nil
}

func (s *attemptService) GetResultByExam(userID, examID uint) (*dto.AttemptSummaryDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndExamWithDetails(userID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("fetching attempt for user %d exam %d: %w", userID, examID, err)
	}
	summary := summarize(attempt)
	return &summary, nil
}

func summarize(attempt *model.Attempt) dto.AttemptSummaryDTO {
	return dto.AttemptSummaryDTO{
		ID:             attempt.ID,
		ExamID:         attempt.ExamID,
		ExamTitle:      attempt.Exam.Title,
		ExamDuration:   attempt.Exam.Duration,
		ExamTotalMarks: attempt.Exam.TotalMarks,
		Score:          attempt.Score,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		TimeTaken:      attempt.TimeTaken,
		CreatedAt:      attempt.CreatedAt,
	}
}

func subjectOf(exam *model.Exam) *uint {
	if exam.Chapter.ID == 0 {
		return nil
	}
	id := exam.Chapter.SubjectID
	return &id
}
