package models

import (
	"time"

	servicemodels "komakresan-backend/internal/apps/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceScore is a customer's rating of a completed service request. A
// request is scored at most once.
type ServiceScore struct {
	ID            uuid.UUID                     `gorm:"type:uuid;primary_key" json:"id"`
	RequestID     uuid.UUID                     `gorm:"type:uuid;uniqueIndex;not null" json:"request_id"`
	Request       *servicemodels.ServiceRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"request,omitempty"`
	QualityScore  int                           `gorm:"not null" json:"quality_score"`
	BehaviorScore int                           `gorm:"not null" json:"behavior_score"`
	TimeScore     int                           `gorm:"not null" json:"time_score"`
	Comment       string                        `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (s *ServiceScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name to 'service_scores'
func (ServiceScore) TableName() string { return "service_scores" }

// Average returns the mean of the three score dimensions
func (s *ServiceScore) Average() float64 {
	return float64(s.QualityScore+s.BehaviorScore+s.TimeScore) / 3
}

// SubmitScoreRequest is the payload for rating a completed request
type SubmitScoreRequest struct {
	RequestID     uuid.UUID `json:"request_id" binding:"required"`
	QualityScore  int       `json:"quality_score" binding:"required,min=1,max=10"`
	BehaviorScore int       `json:"behavior_score" binding:"required,min=1,max=10"`
	TimeScore     int       `json:"time_score" binding:"required,min=1,max=10"`
	Comment       string    `json:"comment,omitempty"`
}

// CompanyScoreSummary aggregates scores across a company's completed work
type CompanyScoreSummary struct {
	CompanyID       uuid.UUID `json:"company_id"`
	ScoreCount      int64     `json:"score_count"`
	AverageQuality  float64   `json:"average_quality"`
	AverageBehavior float64   `json:"average_behavior"`
	AverageTime     float64   `json:"average_time"`
	AverageOverall  float64   `json:"average_overall"`
}
