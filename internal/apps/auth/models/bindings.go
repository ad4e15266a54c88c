package models

import (
	"time"

	otpmodels "komakresan-backend/internal/apps/otp/models"
	usermodels "komakresan-backend/internal/apps/user/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationOTP holds the proposed account fields for a pending
// registration until its OTP code is validated. The candidate password is
// stored hashed; the plaintext never reaches the database.
type RegistrationOTP struct {
	ID           uuid.UUID                 `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OTPID        uuid.UUID                 `gorm:"type:uuid;uniqueIndex;not null" json:"otp_id"`
	OTP          *otpmodels.OneTimePassword `gorm:"foreignKey:OTPID;constraint:OnDelete:CASCADE" json:"-"`
	Username     string                    `gorm:"size:40;not null" json:"username"`
	Email        string                    `gorm:"size:255;not null" json:"email"`
	Phone        string                    `gorm:"size:11;not null" json:"phone"`
	PasswordHash string                    `gorm:"size:128;not null" json:"-"`
	FullName     string                    `gorm:"size:255" json:"full_name"`
	UserType     usermodels.UserType       `gorm:"type:varchar(2);not null" json:"user_type"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (r *RegistrationOTP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'registration_otps'
func (RegistrationOTP) TableName() string { return "registration_otps" }

// LoginOTP binds an issued OTP to an existing account's login attempt
type LoginOTP struct {
	ID        uuid.UUID                 `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OTPID     uuid.UUID                 `gorm:"type:uuid;uniqueIndex;not null" json:"otp_id"`
	OTP       *otpmodels.OneTimePassword `gorm:"foreignKey:OTPID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Phone     string                    `gorm:"size:11;not null" json:"phone"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (l *LoginOTP) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'login_otps'
func (LoginOTP) TableName() string { return "login_otps" }

// PasswordResetOTP binds an issued OTP to an account's credential reset
type PasswordResetOTP struct {
	ID        uuid.UUID                 `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OTPID     uuid.UUID                 `gorm:"type:uuid;uniqueIndex;not null" json:"otp_id"`
	OTP       *otpmodels.OneTimePassword `gorm:"foreignKey:OTPID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Phone     string                    `gorm:"size:11;not null" json:"phone"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (p *PasswordResetOTP) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'password_reset_otps'
func (PasswordResetOTP) TableName() string { return "password_reset_otps" }

// RegisterRequest is the payload to start a registration flow
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=40"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,len=11"`
	Password     string `json:"password" binding:"required"`
	PasswordConf string `json:"password_conf" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	UserType     string `json:"user_type" binding:"required"`
}

// PhoneRequest is the payload to start a login or password-reset flow
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,len=11"`
}

// CodeRequest is the payload to complete a login or registration flow
type CodeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// PasswordLoginRequest is the payload for the password-based login path
type PasswordLoginRequest struct {
	Phone    string `json:"phone" binding:"required,len=11"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest is the payload to complete a password-reset flow
type ResetPasswordRequest struct {
	Code         string `json:"code" binding:"required,len=6"`
	Password     string `json:"password" binding:"required"`
	PasswordConf string `json:"password_conf" binding:"required"`
}
