package repository

import (
	"time"

	"komakresan-backend/internal/apps/otp/models"

	"gorm.io/gorm"
)

// OTPRepository defines data operations for one-time passwords
type OTPRepository interface {
	Create(otp *models.OneTimePassword) error
	FindByToken(token string) (*models.OneTimePassword, error)
	MarkExpired(token string) error
	// ConsumeActive transitions the record from ACTIVE to USED in a single
	// conditional update and reports how many rows matched. A zero count means
	// the record was already consumed, expired, or missing.
	ConsumeActive(token string, now time.Time) (int64, error)
	Delete(token string) error
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

// otpRepository implements OTPRepository
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates an instance of OTPRepository
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Create persists a new OTP record
func (r *otpRepository) Create(otp *models.OneTimePassword) error {
	return r.db.Create(otp).Error
}

// FindByToken retrieves an OTP record by its token
func (r *otpRepository) FindByToken(token string) (*models.OneTimePassword, error) {
	var otp models.OneTimePassword
	if err := r.db.Where("token = ?", token).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

// MarkExpired sets the status of an unused record to EXPIRED
func (r *otpRepository) MarkExpired(token string) error {
	return r.db.Model(&models.OneTimePassword{}).
		Where("token = ? AND is_used = false", token).
		Update("status", models.StatusExpired).Error
}

// ConsumeActive performs the one-time consumption as a single atomic update.
// Two concurrent validations for the same token cannot both match the WHERE
// clause, so at most one caller observes a non-zero row count.
func (r *otpRepository) ConsumeActive(token string, now time.Time) (int64, error) {
	result := r.db.Model(&models.OneTimePassword{}).
		Where("token = ? AND status = ? AND is_used = false AND expires_at > ?",
			token, models.StatusActive, now).
		Updates(map[string]interface{}{
			"status":  models.StatusUsed,
			"is_used": true,
		})
	return result.RowsAffected, result.Error
}

// Delete removes an OTP record by token
func (r *otpRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.OneTimePassword{}).Error
}

// DeleteExpiredBefore removes stale records whose expiry passed before cutoff
func (r *otpRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", cutoff).Delete(&models.OneTimePassword{})
	return result.RowsAffected, result.Error
}
