package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/config"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/gateway"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"gorm.io/gorm"
)

// PaymentService owns the payment ledger and drives the subscription grant
// off the gateway's asynchronous callbacks.
type PaymentService interface {
	Initiate(req dto.PaymentInitiateDTO) (*dto.PaymentInitiatedDTO, error)
	HandleSuccess(tranID string) (*dto.PaymentDTO, error)
	HandleFailure(tranID string) (*dto.PaymentDTO, error)
}

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	gatewayClient gateway.Client
	baseURL       string
	db            *gorm.DB
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	gatewayClient gateway.Client,
	cfg *config.Config,
	db *gorm.DB,
) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		gatewayClient: gatewayClient,
		baseURL:       cfg.BaseURL,
		db:            db,
	}
}

// Initiate asks the gateway for a checkout session first and only records the
// Pending payment once the redirect URL is in hand, so a gateway failure
// never strands a Pending row.
func (s *paymentService) Initiate(req dto.PaymentInitiateDTO) (*dto.PaymentInitiatedDTO, error) {
	tranID := fmt.Sprintf("TXN_%d", time.Now().UnixNano())

	redirectURL, err := s.gatewayClient.CreateSession(gateway.SessionRequest{
		Amount:        req.Amount,
		Currency:      "BDT",
		TransactionID: tranID,
		ProductName:   req.SubscriptionType + " plan",
		SuccessURL:    s.baseURL + "/api/v1/payments/success",
		FailURL:       s.baseURL + "/api/v1/payments/fail",
		CancelURL:     s.baseURL + "/api/v1/payments/cancel",
		IPNURL:        s.baseURL + "/api/v1/payments/ipn",
	})
	if err != nil {
		log.Error().Err(err).Str("tran_id", tranID).Uint("userID", req.UserID).Msg("Initiate: gateway session failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	payment := model.Payment{
		UserID:           req.UserID,
		Amount:           req.Amount,
		Currency:         "BDT",
		TransactionID:    tranID,
		PaymentStatus:    model.PaymentStatusPending,
		PaymentGateway:   "SSLCommerz",
		SubscriptionType: req.SubscriptionType,
	}
	if err := s.paymentRepo.Create(&payment); err != nil {
		log.Error().Err(err).Str("tran_id", tranID).Msg("Initiate: failed to record pending payment")
		return nil, fmt.Errorf("recording payment: %w", err)
	}

	log.Info().Str("tran_id", tranID).Uint("userID", req.UserID).Str("plan", req.SubscriptionType).Msg("Payment initiated")
	return &dto.PaymentInitiatedDTO{RedirectURL: redirectURL, TransactionID: tranID}, nil
}

// HandleSuccess transitions the payment Pending→Success and grants the
// subscription. Gateways retry callbacks, so the transition is a conditional
// update: only the call that actually flips the row creates a subscription,
// every repeat sees zero rows changed and returns the payment untouched. The
// flip and the grant commit together; a failed grant rolls the payment back
// to Pending so the gateway's next retry can settle it.
func (s *paymentService) HandleSuccess(tranID string) (*dto.PaymentDTO, error) {
	granted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := repository.NewPaymentRepository(tx).TransitionFromPending(tranID, model.PaymentStatusSuccess)
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}

		var payment model.Payment
		if err := tx.Where("transaction_id = ?", tranID).First(&payment).Error; err != nil {
			return err
		}
		subscription, err := newSubscription(payment.UserID, payment.SubscriptionType, payment.Amount)
		if err != nil {
			return err
		}
		if err := repository.NewSubscriptionRepository(tx).Create(subscription); err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("tran_id", tranID).Msg("HandleSuccess: settlement failed, payment left Pending")
		return nil, fmt.Errorf("settling payment %s: %w", tranID, err)
	}

	payment, err := s.paymentRepo.FindByTransactionID(tranID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("loading payment %s: %w", tranID, err)
	}

	if granted {
		log.Info().Str("tran_id", tranID).Uint("userID", payment.UserID).Msg("Payment succeeded, subscription granted")
	} else {
		log.Info().Str("tran_id", tranID).Str("status", payment.PaymentStatus).Msg("HandleSuccess: payment already settled, callback ignored")
	}
	return paymentToDTO(payment), nil
}

// HandleFailure marks the payment Failed. The gateway's cancel callback is
// routed here as well; no subscription is ever created on this path.
func (s *paymentService) HandleFailure(tranID string) (*dto.PaymentDTO, error) {
	if _, err := s.paymentRepo.TransitionFromPending(tranID, model.PaymentStatusFailed); err != nil {
		log.Error().Err(err).Str("tran_id", tranID).Msg("HandleFailure: status transition failed")
		return nil, fmt.Errorf("transitioning payment %s: %w", tranID, err)
	}

	payment, err := s.paymentRepo.FindByTransactionID(tranID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("loading payment %s: %w", tranID, err)
	}

	log.Info().Str("tran_id", tranID).Str("status", payment.PaymentStatus).Msg("Payment failure recorded")
	return paymentToDTO(payment), nil
}

func paymentToDTO(payment *model.Payment) *dto.PaymentDTO {
	var out dto.PaymentDTO
	copier.Copy(&out, payment)
	return &out
}
