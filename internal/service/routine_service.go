package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

// RoutineService manages the exam calendar: admin-authored sittings plus the
// upcoming view students poll.
type RoutineService interface {
	Create(req dto.RoutineCreateDTO) (*dto.RoutineResponseDTO, error)
	Get(id uint) (*dto.RoutineResponseDTO, error)
	GetAll() ([]dto.RoutineResponseDTO, error)
	Upcoming() ([]dto.RoutineResponseDTO, error)
	Update(id uint, req dto.RoutineCreateDTO) (*dto.RoutineResponseDTO, error)
	Delete(id uint) error
}

type routineService struct {
	routineRepo repository.RoutineRepository
	subjectRepo repository.SubjectRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository, subjectRepo repository.SubjectRepository) RoutineService {
	return &routineService{routineRepo: routineRepo, subjectRepo: subjectRepo}
}

// routineStatus derives the lifecycle state from the scheduled window. A
// sitting whose start has passed but whose duration has not elapsed is running.
func routineStatus(date time.Time, duration int, now time.Time) string {
	if now.Before(date) {
		return model.RoutineStatusUpcoming
	}
	if now.Before(date.Add(time.Duration(duration) * time.Minute)) {
		return model.RoutineStatusRunning
	}
	return model.RoutineStatusCompleted
}

func (s *routineService) Create(req dto.RoutineCreateDTO) (*dto.RoutineResponseDTO, error) {
	if _, err := s.subjectRepo.FindByID(req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("fetching subject %d: %w", req.SubjectID, err)
	}

	var routine model.Routine
	copier.Copy(&routine, &req)
	routine.Status = routineStatus(routine.Date, routine.Duration, time.Now())
	if err := s.routineRepo.Create(&routine); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Create: routine insert failed")
		return nil, fmt.Errorf("creating routine: %w", err)
	}
	return routineToDTO(&routine), nil
}

func (s *routineService) Get(id uint) (*dto.RoutineResponseDTO, error) {
	routine, err := s.routineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("fetching routine %d: %w", id, err)
	}
	return routineToDTO(routine), nil
}

func (s *routineService) GetAll() ([]dto.RoutineResponseDTO, error) {
	routines, err := s.routineRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching routines: %w", err)
	}
	return routinesToDTO(routines), nil
}

func (s *routineService) Upcoming() ([]dto.RoutineResponseDTO, error) {
	routines, err := s.routineRepo.FindUpcoming(time.Now())
	if err != nil {
		return nil, fmt.Errorf("fetching upcoming routines: %w", err)
	}
	return routinesToDTO(routines), nil
}

func (s *routineService) Update(id uint, req dto.RoutineCreateDTO) (*dto.RoutineResponseDTO, error) {
	routine, err := s.routineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("fetching routine %d: %w", id, err)
	}
	copier.Copy(routine, &req)
	routine.Status = routineStatus(routine.Date, routine.Duration, time.Now())
	if err := s.routineRepo.Update(routine); err != nil {
		return nil, fmt.Errorf("updating routine %d: %w", id, err)
	}
	return routineToDTO(routine), nil
}

func (s *routineService) Delete(id uint) error {
	return s.routineRepo.Delete(id)
}

func routineToDTO(routine *model.Routine) *dto.RoutineResponseDTO {
	var out dto.RoutineResponseDTO
	copier.Copy(&out, routine)
	return &out
}

func routinesToDTO(routines []model.Routine) []dto.RoutineResponseDTO {
	dtos := make([]dto.RoutineResponseDTO, 0, len(routines))
	for i := range routines {
		dtos = append(dtos, *routineToDTO(&routines[i]))
	}
	return dtos
}
