package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

// UserExamService is the exam-taking read surface: published exams and their
// questions with the answer key stripped out.
type UserExamService interface {
	GetPublishedExams() ([]dto.ExamResponseDTO, error)
	GetExamQuestions(examID uint) ([]dto.ExamQuestionDTO, error)
}

type userExamService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
}

func NewUserExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository) UserExamService {
	return &userExamService{examRepo: examRepo, questionRepo: questionRepo}
}

func (s *userExamService) GetPublishedExams() ([]dto.ExamResponseDTO, error) {
	exams, err := s.examRepo.FindAllPublished()
	if err != nil {
		return nil, fmt.Errorf("fetching published exams: %w", err)
	}
	dtos := make([]dto.ExamResponseDTO, 0, len(exams))
	for i := range exams {
		var out dto.ExamResponseDTO
		copier.Copy(&out, &exams[i])
		dtos = append(dtos, out)
	}
	return dtos, nil
}

func (s *userExamService) GetExamQuestions(examID uint) ([]dto.ExamQuestionDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("fetching exam %d: %w", examID, err)
	}

	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for exam %d: %w", examID, err)
	}

	dtos := make([]dto.ExamQuestionDTO, 0, len(questions))
	for _, q := range questions {
		item := dto.ExamQuestionDTO{
			ID:     q.ID,
			ExamID: q.ExamID,
			Text:   q.Text,
			Image:  q.Image,
		}
		for _, opt := range q.Options {
			item.Options = append(item.Options, opt.Text)
		}
		dtos = append(dtos, item)
	}
	return dtos, nil
}
