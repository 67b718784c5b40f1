package memberships

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bcds-membership/core/membership"
	"bcds-membership/core/utils"
	"bcds-membership/feature/memberships/models"

	"gorm.io/gorm"
)

// ErrPaymentExists is returned when a confirmation code was already recorded.
var ErrPaymentExists = errors.New("payment already recorded")

// Store persists membership intervals and payments.
type Store struct {
	db *gorm.DB
}

// Ensure Store implements the evaluator port
var _ membership.IntervalStore = (*Store)(nil)

// NewStore creates a membership store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) IntervalCovering(ctx context.Context, playerID uint, date time.Time) (*membership.Interval, error) {
	d := utils.DateOf(date)

	var row models.Membership
	err := s.db.WithContext(ctx).
		Where("player_id = ? AND valid_from <= ? AND valid_until >= ?", playerID, d, d).
		Order("valid_from").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}

	interval := row.Interval()
	return &interval, nil
}

// AddInterval stores a membership interval without a payment.
func (s *Store) AddInterval(ctx context.Context, playerID uint, interval membership.Interval) error {
	row := newMembership(playerID, interval, "")
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// ConfirmationCodeExists reports whether a payment was already recorded.
func (s *Store) ConfirmationCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("confirmation_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check confirmation code: %w", err)
	}
	return count > 0, nil
}

// RecordPayment stores a payment and the interval it bought in one transaction.
func (s *Store) RecordPayment(ctx context.Context, playerID uint, interval membership.Interval, payment models.Payment) error {
	payment.PlayerID = playerID
	payment.Date = utils.DateOf(payment.Date)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrPaymentExists, payment.ConfirmationCode)
			}
			return fmt.Errorf("failed to record payment: %w", err)
		}

		row := newMembership(playerID, interval, payment.ConfirmationCode)
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to add membership: %w", err)
		}
		return nil
	})
}

// ListForPlayer returns the player's memberships, oldest first.
func (s *Store) ListForPlayer(ctx context.Context, playerID uint) ([]models.Membership, error) {
	var rows []models.Membership
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("valid_from").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return rows, nil
}

func newMembership(playerID uint, interval membership.Interval, code string) models.Membership {
	return models.Membership{
		PlayerID:    playerID,
		ValidFrom:   utils.DateOf(interval.ValidFrom),
		ValidUntil:  utils.DateOf(interval.ValidUntil),
		PaymentCode: code,
	}
}
