package repository

import (
	"time"

	"github.com/tahsinkabir/examly/internal/model"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(subscription *model.Subscription) error
	FindAllByUser(userID uint) ([]model.Subscription, error)
	// ExpireOlderThan transitions active subscriptions whose window closed
	// before the given instant and returns the number of rows changed.
	ExpireOlderThan(now time.Time) (int64, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscription *model.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *subscriptionRepository) FindAllByUser(userID uint) ([]model.Subscription, error) {
	var subscriptions []model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *subscriptionRepository) ExpireOlderThan(now time.Time) (int64, error) {
	res := r.db.Model(&model.Subscription{}).
		Where("status = ? AND end_date < ?", model.SubscriptionStatusActive, now).
		Update("status", model.SubscriptionStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
