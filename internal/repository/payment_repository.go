package repository

import (
	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByTransactionID(tranID string) (*model.Payment, error)
	// TransitionFromPending flips a Pending payment to the given terminal
	// status and reports how many rows changed. Zero means the payment is
	// either missing or already terminal, which is how duplicate gateway
	// callbacks are detected.
	TransitionFromPending(tranID, status string) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) FindByTransactionID(tranID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("transaction_id = ?", tranID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) TransitionFromPending(tranID, status string) (int64, error) {
	res := r.db.Model(&model.Payment{}).
		Where("transaction_id = ? AND payment_status = ?", tranID, model.PaymentStatusPending).
		Update("payment_status", status)
	return res.RowsAffected, res.Error
}
