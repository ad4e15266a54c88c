package repository

import (
	"komakresan-backend/internal/apps/auth/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BindingRepository defines data operations for the per-flow OTP binding
// records. Each binding is keyed by the OTP it belongs to.
type BindingRepository interface {
	CreateRegistration(binding *models.RegistrationOTP) error
	FindRegistrationByOTPID(otpID uuid.UUID) (*models.RegistrationOTP, error)
	DeleteRegistration(otpID uuid.UUID) error

	CreateLogin(binding *models.LoginOTP) error
	FindLoginByOTPID(otpID uuid.UUID) (*models.LoginOTP, error)
	DeleteLogin(otpID uuid.UUID) error

	CreateReset(binding *models.PasswordResetOTP) error
	FindResetByOTPID(otpID uuid.UUID) (*models.PasswordResetOTP, error)
	DeleteReset(otpID uuid.UUID) error
}

// bindingRepository implements BindingRepository
type bindingRepository struct {
	db *gorm.DB
}

// NewBindingRepository creates a new instance of BindingRepository
func NewBindingRepository(db *gorm.DB) BindingRepository {
	return &bindingRepository{db: db}
}

// CreateRegistration persists a pending-registration binding
func (r *bindingRepository) CreateRegistration(binding *models.RegistrationOTP) error {
	return r.db.Create(binding).Error
}

// FindRegistrationByOTPID retrieves a registration binding by its OTP
func (r *bindingRepository) FindRegistrationByOTPID(otpID uuid.UUID) (*models.RegistrationOTP, error) {
	var binding models.RegistrationOTP
	if err := r.db.Where("otp_id = ?", otpID).First(&binding).Error; err != nil {
		return nil, err
	}
	return &binding, nil
}

// DeleteRegistration removes a registration binding by its OTP
func (r *bindingRepository) DeleteRegistration(otpID uuid.UUID) error {
	return r.db.Where("otp_id = ?", otpID).Delete(&models.RegistrationOTP{}).Error
}

// CreateLogin persists a login-attempt binding
func (r *bindingRepository) CreateLogin(binding *models.LoginOTP) error {
	return r.db.Create(binding).Error
}

// FindLoginByOTPID retrieves a login binding by its OTP
func (r *bindingRepository) FindLoginByOTPID(otpID uuid.UUID) (*models.LoginOTP, error) {
	var binding models.LoginOTP
	if err := r.db.Where("otp_id = ?", otpID).First(&binding).Error; err != nil {
		return nil, err
	}
	return &binding, nil
}

// DeleteLogin removes a login binding by its OTP
func (r *bindingRepository) DeleteLogin(otpID uuid.UUID) error {
	return r.db.Where("otp_id = ?", otpID).Delete(&models.LoginOTP{}).Error
}

// CreateReset persists a password-reset binding
func (r *bindingRepository) CreateReset(binding *models.PasswordResetOTP) error {
	return r.db.Create(binding).Error
}

// FindResetByOTPID retrieves a password-reset binding by its OTP
func (r *bindingRepository) FindResetByOTPID(otpID uuid.UUID) (*models.PasswordResetOTP, error) {
	var binding models.PasswordResetOTP
	if err := r.db.Where("otp_id = ?", otpID).First(&binding).Error; err != nil {
		return nil, err
	}
	return &binding, nil
}

// DeleteReset removes a password-reset binding by its OTP
func (r *bindingRepository) DeleteReset(otpID uuid.UUID) error {
	return r.db.Where("otp_id = ?", otpID).Delete(&models.PasswordResetOTP{}).Error
}
