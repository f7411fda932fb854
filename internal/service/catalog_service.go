package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

// CatalogService is the admin CRUD surface for subjects, chapters, exams and
// questions. The evaluation engine treats everything here as read-only input.
type CatalogService interface {
	CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error)
	GetSubjects() ([]dto.SubjectResponseDTO, error)
	GetSubject(id uint) (*dto.SubjectResponseDTO, error)
	UpdateSubject(id uint, req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error)
	DeleteSubject(id uint) error

	CreateChapter(req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error)
	GetChapter(id uint) (*dto.ChapterResponseDTO, error)
	GetChaptersBySubject(subjectID uint) ([]dto.ChapterResponseDTO, error)
	UpdateChapter(id uint, req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error)
	DeleteChapter(id uint) error

	CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	GetExam(id uint) (*dto.ExamResponseDTO, error)
	GetExamsByChapter(chapterID uint) ([]dto.ExamResponseDTO, error)
	UpdateExam(id uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	DeleteExam(id uint) error

	CreateQuestion(examID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	GetQuestion(id uint) (*dto.QuestionResponseDTO, error)
	GetQuestionsByExam(examID uint) ([]dto.QuestionResponseDTO, error)
	UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(id uint) error
}

type catalogService struct {
	subjectRepo  repository.SubjectRepository
	chapterRepo  repository.ChapterRepository
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
}

func NewCatalogService(
	subjectRepo repository.SubjectRepository,
	chapterRepo repository.ChapterRepository,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
) CatalogService {
	return &catalogService{
		subjectRepo:  subjectRepo,
		chapterRepo:  chapterRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
	}
}

// --- Subjects ---

func (s *catalogService) CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error) {
	var subject model.Subject
	copier.Copy(&subject, &req)
	if err := s.subjectRepo.Create(&subject); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateSubject: insert failed")
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return subjectToDTO(&subject), nil
}

func (s *catalogService) GetSubjects() ([]dto.SubjectResponseDTO, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching subjects: %w", err)
	}
	dtos := make([]dto.SubjectResponseDTO, 0, len(subjects))
	for i := range subjects {
		dtos = append(dtos, *subjectToDTO(&subjects[i]))
	}
	return dtos, nil
}

func (s *catalogService) GetSubject(id uint) (*dto.SubjectResponseDTO, error) {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("fetching subject %d: %w", id, err)
	}
	return subjectToDTO(subject), nil
}

func (s *catalogService) UpdateSubject(id uint, req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error) {
	subject, err := s.subjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("fetching subject %d: %w", id, err)
	}
	copier.Copy(subject, &req)
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, fmt.Errorf("updating subject %d: %w", id, err)
	}
	return subjectToDTO(subject), nil
}

func (s *catalogService) DeleteSubject(id uint) error {
	return s.subjectRepo.Delete(id)
}

// --- Chapters ---

func (s *catalogService) CreateChapter(req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error) {
	if _, err := s.subjectRepo.FindByID(req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("fetching subject %d: %w", req.SubjectID, err)
	}
	var chapter model.Chapter
	copier.Copy(&chapter, &req)
	if err := s.chapterRepo.Create(&chapter); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateChapter: insert failed")
		return nil, fmt.Errorf("creating chapter: %w", err)
	}
	return chapterToDTO(&chapter), nil
}

func (s *catalogService) GetChapter(id uint) (*dto.ChapterResponseDTO, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("fetching chapter %d: %w", id, err)
	}
	return chapterToDTO(chapter), nil
}

func (s *catalogService) GetChaptersBySubject(subjectID uint) ([]dto.ChapterResponseDTO, error) {
	chapters, err := s.chapterRepo.FindBySubjectID(subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetching chapters for subject %d: %w", subjectID, err)
	}
	dtos := make([]dto.ChapterResponseDTO, 0, len(chapters))
	for i := range chapters {
		dtos = append(dtos, *chapterToDTO(&chapters[i]))
	}
	return dtos, nil
}

func (s *catalogService) UpdateChapter(id uint, req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("fetching chapter %d: %w", id, err)
	}
	copier.Copy(chapter, &req)
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, fmt.Errorf("updating chapter %d: %w", id, err)
	}
	return chapterToDTO(chapter), nil
}

func (s *catalogService) DeleteChapter(id uint) error {
	return s.chapterRepo.Delete(id)
}

// --- Exams ---

func (s *catalogService) CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	if _, err := s.chapterRepo.FindByID(req.ChapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("fetching chapter %d: %w", req.ChapterID, err)
	}
	var exam model.Exam
	copier.Copy(&exam, &req)
	if exam.Difficulty == "" {
		exam.Difficulty = "medium"
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateExam: insert failed")
		return nil, fmt.Errorf("creating exam: %w", err)
	}
	return examToDTO(&exam), nil
}

func (s *catalogService) GetExam(id uint) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("fetching exam %d: %w", id, err)
	}
	return examToDTO(exam), nil
}

func (s *catalogService) GetExamsByChapter(chapterID uint) ([]dto.ExamResponseDTO, error) {
	exams, err := s.examRepo.FindByChapterID(chapterID)
	if err != nil {
		return nil, fmt.Errorf("fetching exams for chapter %d: %w", chapterID, err)
	}
	dtos := make([]dto.ExamResponseDTO, 0, len(exams))
	for i := range exams {
		dtos = append(dtos, *examToDTO(&exams[i]))
	}
	return dtos, nil
}

func (s *catalogService) UpdateExam(id uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("fetching exam %d: %w", id, err)
	}
	copier.Copy(exam, &req)
	if err := s.examRepo.Update(exam); err != nil {
		return nil, fmt.Errorf("updating exam %d: %w", id, err)
	}
	return examToDTO(exam), nil
}

func (s *catalogService) DeleteExam(id uint) error {
	return s.examRepo.Delete(id)
}

// --- Questions ---

func (s *catalogService) CreateQuestion(examID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("fetching exam %d: %w", examID, err)
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	question := model.Question{
		ExamID:           examID,
		Text:             req.Text,
		Image:            req.Image,
		ExplanationText:  req.ExplanationText,
		ExplanationImage: req.ExplanationImage,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.Option{Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("CreateQuestion: insert failed")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return questionToDTO(&question), nil
}

func (s *catalogService) GetQuestion(id uint) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("fetching question %d: %w", id, err)
	}
	return questionToDTO(question), nil
}

func (s *catalogService) GetQuestionsByExam(examID uint) ([]dto.QuestionResponseDTO, error) {
	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for exam %d: %w", examID, err)
	}
	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		dtos = append(dtos, *questionToDTO(&questions[i]))
	}
	return dtos, nil
}

func (s *catalogService) UpdateQuestion(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("fetching question %d: %w", id, err)
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Image = req.Image
	question.ExplanationText = req.ExplanationText
	question.ExplanationImage = req.ExplanationImage
	question.Options = nil
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.Option{QuestionID: question.ID, Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}
	return questionToDTO(question), nil
}

func (s *catalogService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

// validateOptions enforces the authoring-time invariant the evaluator trusts:
// exactly one option per question is marked correct.
func validateOptions(options []dto.OptionCreateDTO) error {
	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("%w: exactly one option must be marked correct, got %d", ErrInvalidQuestion, correct)
	}
	return nil
}

func subjectToDTO(subject *model.Subject) *dto.SubjectResponseDTO {
	var out dto.SubjectResponseDTO
	copier.Copy(&out, subject)
	return &out
}

func chapterToDTO(chapter *model.Chapter) *dto.ChapterResponseDTO {
	var out dto.ChapterResponseDTO
	copier.Copy(&out, chapter)
	return &out
}

func examToDTO(exam *model.Exam) *dto.ExamResponseDTO {
	var out dto.ExamResponseDTO
	copier.Copy(&out, exam)
	return &out
}

func questionToDTO(question *model.Question) *dto.QuestionResponseDTO {
	var out dto.QuestionResponseDTO
	copier.Copy(&out, question)
	out.Options = make([]dto.OptionResponseDTO, 0, len(question.Options))
	for _, opt := range question.Options {
		out.Options = append(out.Options, dto.OptionResponseDTO{ID: opt.ID, Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	return &out
}
