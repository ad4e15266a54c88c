package service

import (
	"errors"

	"komakresan-backend/internal/apps/score/models"
	"komakresan-backend/internal/apps/score/repository"
	servicemodels "komakresan-backend/internal/apps/service/models"
	servicerepository "komakresan-backend/internal/apps/service/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrScoreNotFound     = errors.New("score not found")
	ErrRequestNotDone    = errors.New("only completed requests can be scored")
	ErrAlreadyScored     = errors.New("request has already been scored")
	ErrNotScoreCustomer  = errors.New("only the requesting customer can score this request")
	ErrScoredRequestGone = errors.New("service request not found")
)

// ScoreService defines the interface for service score business logic
type ScoreService interface {
	Submit(customerID uuid.UUID, req *models.SubmitScoreRequest) (*models.ServiceScore, error)
	GetForRequest(requestID uuid.UUID) (*models.ServiceScore, error)
	CompanySummary(companyID uuid.UUID) (*models.CompanyScoreSummary, error)
}

type scoreService struct {
	scores   repository.ScoreRepository
	requests servicerepository.RequestRepository
}

// NewScoreService creates a new instance of ScoreService
func NewScoreService(scores repository.ScoreRepository, requests servicerepository.RequestRepository) ScoreService {
	return &scoreService{scores: scores, requests: requests}
}

func (s *scoreService) Submit(customerID uuid.UUID, req *models.SubmitScoreRequest) (*models.ServiceScore, error) {
	request, err := s.requests.FindByID(req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoredRequestGone
		}
		return nil, err
	}
	if request.CustomerID != customerID {
		return nil, ErrNotScoreCustomer
	}
	if request.Status != servicemodels.RequestDone {
		return nil, ErrRequestNotDone
	}

	scored, err := s.scores.ExistsForRequest(req.RequestID)
	if err != nil {
		return nil, err
	}
	if scored {
		return nil, ErrAlreadyScored
	}

	score := &models.ServiceScore{
		RequestID:     req.RequestID,
		QualityScore:  req.QualityScore,
		BehaviorScore: req.BehaviorScore,
		TimeScore:     req.TimeScore,
		Comment:       req.Comment,
	}
	if err := s.scores.Create(score); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *scoreService) GetForRequest(requestID uuid.UUID) (*models.ServiceScore, error) {
	score, err := s.scores.FindByRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return score, nil
}

func (s *scoreService) CompanySummary(companyID uuid.UUID) (*models.CompanyScoreSummary, error) {
	return s.scores.SummarizeCompany(companyID)
}
