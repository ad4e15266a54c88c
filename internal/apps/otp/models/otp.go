package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the lifecycle state of a one-time password
type Status string

const (
	StatusActive  Status = "ACT"
	StatusExpired Status = "EXP"
	StatusUsed    Status = "USD"
)

// DefaultTTL is how long an issued code stays valid
const DefaultTTL = 2 * time.Minute

// OneTimePassword represents a short-lived numeric code bound to an opaque token.
// The token is the handle a client presents across the issue/validate round trip.
type OneTimePassword struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Status    Status    `gorm:"type:varchar(3);default:'ACT';index" json:"status"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (o *OneTimePassword) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'one_time_passwords'
func (OneTimePassword) TableName() string { return "one_time_passwords" }

// IssueOTPResponse represents the response after issuing an OTP.
// The code itself travels out-of-band via the SMS provider.
type IssueOTPResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToIssueResponse converts an OTP record to the issue response payload
func (o *OneTimePassword) ToIssueResponse() IssueOTPResponse {
	return IssueOTPResponse{
		Token:     o.Token,
		ExpiresAt: o.ExpiresAt,
	}
}
