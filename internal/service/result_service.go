package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/repository"
)

const leaderboardSize = 20

// ResultService serves the read-only ranking and rollup views derived from
// persisted results. No business branching, just grouping and aggregates.
type ResultService interface {
	Leaderboard(examID uint) ([]dto.LeaderboardEntryDTO, error)
	UserAnalytics(userID uint) ([]dto.SubjectAnalyticsDTO, error)
	AdminAnalytics() ([]dto.ExamAnalyticsDTO, error)
}

type resultService struct {
	resultRepo repository.ResultRepository
}

func NewResultService(resultRepo repository.ResultRepository) ResultService {
	return &resultService{resultRepo: resultRepo}
}

func (s *resultService) Leaderboard(examID uint) ([]dto.LeaderboardEntryDTO, error) {
	results, err := s.resultRepo.LeaderboardByExam(examID, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Leaderboard: repository error")
		return nil, fmt.Errorf("fetching leaderboard for exam %d: %w", examID, err)
	}

	entries := make([]dto.LeaderboardEntryDTO, 0, len(results))
	for i, res := range results {
		entries = append(entries, dto.LeaderboardEntryDTO{
			Rank:        i + 1,
			UserID:      res.UserID,
			Score:       res.Score,
			Percentage:  res.Percentage,
			TimeTaken:   res.TimeTaken,
			SubmittedAt: res.SubmittedAt,
		})
	}
	return entries, nil
}

func (s *resultService) UserAnalytics(userID uint) ([]dto.SubjectAnalyticsDTO, error) {
	rollups, err := s.resultRepo.RollupByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("UserAnalytics: repository error")
		return nil, fmt.Errorf("aggregating results for user %d: %w", userID, err)
	}

	analytics := make([]dto.SubjectAnalyticsDTO, 0, len(rollups))
	for _, r := range rollups {
		analytics = append(analytics, dto.SubjectAnalyticsDTO{
			SubjectID:      r.SubjectID,
			TotalExams:     r.TotalExams,
			AvgPercentage:  r.AvgPercentage,
			BestPercentage: r.BestPercentage,
		})
	}
	return analytics, nil
}

func (s *resultService) AdminAnalytics() ([]dto.ExamAnalyticsDTO, error) {
	rollups, err := s.resultRepo.RollupByExam()
	if err != nil {
		log.Error().Err(err).Msg("AdminAnalytics: repository error")
		return nil, fmt.Errorf("aggregating results per exam: %w", err)
	}

	analytics := make([]dto.ExamAnalyticsDTO, 0, len(rollups))
	for _, r := range rollups {
		analytics = append(analytics, dto.ExamAnalyticsDTO{
			ExamID:            r.ExamID,
			TotalAttempts:     r.TotalAttempts,
			AvgPercentage:     r.AvgPercentage,
			HighestPercentage: r.HighestPercentage,
		})
	}
	return analytics, nil
}
