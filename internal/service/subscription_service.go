package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
)

// Validity window per plan tier, fixed at creation time.
var planDurationDays = map[string]int{
	model.PlanBasic:   7,
	model.PlanPremium: 30,
	model.PlanPro:     90,
}

// SubscriptionService provisions time-bounded subscriptions from settled
// payments and runs the expiry sweep.
type SubscriptionService interface {
	Create(userID uint, planType string, amountPaid float64) (*dto.SubscriptionDTO, error)
	ExpireOldSubscriptions() (int64, error)
	GetUserSubscriptions(userID uint) ([]dto.SubscriptionDTO, error)
	Analytics() (*dto.SubscriptionAnalyticsDTO, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

// newSubscription builds the grant for a plan purchase; the validity window is
// fixed off the creation instant.
func newSubscription(userID uint, planType string, amountPaid float64) (*model.Subscription, error) {
	days, ok := planDurationDays[planType]
	if !ok {
		return nil, fmt.Errorf("unknown plan type %q", planType)
	}
	now := time.Now()
	return &model.Subscription{
		UserID:     userID,
		PlanType:   planType,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, days),
		Status:     model.SubscriptionStatusActive,
		AmountPaid: amountPaid,
	}, nil
}

func (s *subscriptionService) Create(userID uint, planType string, amountPaid float64) (*dto.SubscriptionDTO, error) {
	subscription, err := newSubscription(userID, planType, amountPaid)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("plan", planType).Msg("Create: subscription insert failed")
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	log.Info().Uint("userID", userID).Str("plan", planType).Time("end_date", subscription.EndDate).Msg("Subscription created")
	return subscriptionToDTO(subscription), nil
}

// ExpireOldSubscriptions transitions every active subscription whose window
// has closed and returns the number of rows changed. Already-expired rows are
// not re-matched, so repeated sweeps are harmless.
func (s *subscriptionService) ExpireOldSubscriptions() (int64, error) {
	count, err := s.subscriptionRepo.ExpireOlderThan(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("ExpireOldSubscriptions: sweep failed")
		return 0, fmt.Errorf("expiry sweep: %w", err)
	}
	if count > 0 {
		log.Info().Int64("expired", count).Msg("Expiry sweep transitioned subscriptions")
	}
	return count, nil
}

func (s *subscriptionService) GetUserSubscriptions(userID uint) ([]dto.SubscriptionDTO, error) {
	subscriptions, err := s.subscriptionRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions for user %d: %w", userID, err)
	}

	dtos := make([]dto.SubscriptionDTO, 0, len(subscriptions))
	for i := range subscriptions {
		dtos = append(dtos, *subscriptionToDTO(&subscriptions[i]))
	}
	return dtos, nil
}

func (s *subscriptionService) Analytics() (*dto.SubscriptionAnalyticsDTO, error) {
	total, err := s.subscriptionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting subscriptions: %w", err)
	}
	active, err := s.subscriptionRepo.CountByStatus(model.SubscriptionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("counting active subscriptions: %w", err)
	}
	expired, err := s.subscriptionRepo.CountByStatus(model.SubscriptionStatusExpired)
	if err != nil {
		return nil, fmt.Errorf("counting expired subscriptions: %w", err)
	}
	return &dto.SubscriptionAnalyticsDTO{Total: total, Active: active, Expired: expired}, nil
}

func subscriptionToDTO(subscription *model.Subscription) *dto.SubscriptionDTO {
	var out dto.SubscriptionDTO
	copier.Copy(&out, subscription)
	return &out
}
