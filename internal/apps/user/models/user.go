package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType enumerates the account roles on the platform
type UserType string

const (
	UserTypeServiceProvider  UserType = "SP"
	UserTypeServiceRecipient UserType = "SC"
	UserTypeOwner            UserType = "OW"
	UserTypeSupport          UserType = "SU"
	UserTypeAdmin            UserType = "AD"
)

// ValidUserType reports whether t is a known role
func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeServiceProvider, UserTypeServiceRecipient, UserTypeOwner, UserTypeSupport, UserTypeAdmin:
		return true
	}
	return false
}

// AccountStatus enumerates account states
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACT"
	AccountSuspended AccountStatus = "SUS"
)

// IDCardStatus enumerates identity-document review states
type IDCardStatus string

const (
	IDCardPending  IDCardStatus = "P"
	IDCardVerified IDCardStatus = "V"
	IDCardRejected IDCardStatus = "R"
)

// IDCardInfo holds identity-document metadata attached to a user. It is
// created empty at registration and filled in later for review.
type IDCardInfo struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IDCardNumber *string      `gorm:"size:13" json:"id_card_number,omitempty"`
	Status       IDCardStatus `gorm:"type:varchar(1);default:'P'" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (i *IDCardInfo) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'id_card_infos'
func (IDCardInfo) TableName() string { return "id_card_infos" }

// User represents a platform account
type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username     string        `gorm:"size:40;uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string        `gorm:"size:11;uniqueIndex;not null" json:"phone"`
	PasswordHash string        `gorm:"size:128;not null" json:"-"`
	FullName     string        `gorm:"size:255" json:"full_name"`
	UserType     UserType      `gorm:"type:varchar(2);not null" json:"user_type"`
	Status       AccountStatus `gorm:"type:varchar(3);default:'ACT'" json:"status"`
	IsActive     bool          `gorm:"default:true" json:"is_active"`
	IsAdmin      bool          `gorm:"default:false" json:"is_admin"`
	IDCardInfoID *uuid.UUID    `gorm:"type:uuid" json:"-"`
	IDCardInfo   *IDCardInfo   `gorm:"foreignKey:IDCardInfoID" json:"id_card_info,omitempty"`
	CreatedAt    time.Time     `json:"joined_date"`
	UpdatedAt    time.Time     `json:"last_updated"`
}

// BeforeCreate hook to generate UUID before creating record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserResponse represents the public view of an account
type UserResponse struct {
	ID         uuid.UUID     `json:"id"`
	Username   string        `json:"username"`
	FullName   string        `json:"full_name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	UserType   UserType      `json:"user_type"`
	Status     AccountStatus `json:"status"`
	IDCardInfo *IDCardInfo   `json:"id_card_info,omitempty"`
	JoinedDate time.Time     `json:"joined_date"`
	LastUpdate time.Time     `json:"last_updated"`
}

// ToResponse converts User model to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Email:      u.Email,
		Phone:      u.Phone,
		UserType:   u.UserType,
		Status:     u.Status,
		IDCardInfo: u.IDCardInfo,
		JoinedDate: u.CreatedAt,
		LastUpdate: u.UpdatedAt,
	}
}

// UpdateIDCardRequest represents the identity-document metadata update payload
type UpdateIDCardRequest struct {
	IDCardNumber *string       `json:"id_card_number,omitempty"`
	Status       *IDCardStatus `json:"status,omitempty"`
}
