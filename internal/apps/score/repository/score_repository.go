package repository

import (
	"komakresan-backend/internal/apps/score/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScoreRepository defines the interface for service score data operations
type ScoreRepository interface {
	Create(score *models.ServiceScore) error
	FindByRequest(requestID uuid.UUID) (*models.ServiceScore, error)
	ExistsForRequest(requestID uuid.UUID) (bool, error)
	SummarizeCompany(companyID uuid.UUID) (*models.CompanyScoreSummary, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a new instance of ScoreRepository
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(score *models.ServiceScore) error {
	return r.db.Create(score).Error
}

func (r *scoreRepository) FindByRequest(requestID uuid.UUID) (*models.ServiceScore, error) {
	var score models.ServiceScore
	err := r.db.Where("request_id = ?", requestID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) ExistsForRequest(requestID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ServiceScore{}).Where("request_id = ?", requestID).Count(&count).Error
	return count > 0, err
}

func (r *scoreRepository) SummarizeCompany(companyID uuid.UUID) (*models.CompanyScoreSummary, error) {
	summary := models.CompanyScoreSummary{CompanyID: companyID}
	row := struct {
		Count    int64
		Quality  float64
		Behavior float64
		Time     float64
	}{}

	err := r.db.Model(&models.ServiceScore{}).
		Select("COUNT(*) AS count, COALESCE(AVG(quality_score), 0) AS quality, COALESCE(AVG(behavior_score), 0) AS behavior, COALESCE(AVG(time_score), 0) AS time").
		Joins("JOIN service_requests ON service_requests.id = service_scores.request_id").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("services.company_id = ?", companyID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary.ScoreCount = row.Count
	summary.AverageQuality = row.Quality
	summary.AverageBehavior = row.Behavior
	summary.AverageTime = row.Time
	if row.Count > 0 {
		summary.AverageOverall = (row.Quality + row.Behavior + row.Time) / 3
	}
	return &summary, nil
}
