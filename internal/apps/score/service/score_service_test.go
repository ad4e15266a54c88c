package service

import (
	"sync"
	"testing"
	"time"

	"komakresan-backend/internal/apps/score/models"
	servicemodels "komakresan-backend/internal/apps/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeScoreRepository struct {
	mu     sync.Mutex
	scores map[uuid.UUID]*models.ServiceScore
}

func newFakeScoreRepository() *fakeScoreRepository {
	return &fakeScoreRepository{scores: make(map[uuid.UUID]*models.ServiceScore)}
}

func (f *fakeScoreRepository) Create(score *models.ServiceScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	f.scores[score.RequestID] = score
	return nil
}

func (f *fakeScoreRepository) FindByRequest(requestID uuid.UUID) (*models.ServiceScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	score, ok := f.scores[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return score, nil
}

func (f *fakeScoreRepository) ExistsForRequest(requestID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.scores[requestID]
	return ok, nil
}

func (f *fakeScoreRepository) SummarizeCompany(companyID uuid.UUID) (*models.CompanyScoreSummary, error) {
	return &models.CompanyScoreSummary{CompanyID: companyID}, nil
}

type stubRequestRepository struct {
	requests map[uuid.UUID]*servicemodels.ServiceRequest
}

func (s *stubRequestRepository) Create(req *servicemodels.ServiceRequest) error { return nil }

func (s *stubRequestRepository) FindByID(id uuid.UUID) (*servicemodels.ServiceRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (s *stubRequestRepository) FindByCustomer(customerID uuid.UUID) ([]servicemodels.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepository) FindByCompany(companyID uuid.UUID) ([]servicemodels.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepository) UpdateStatus(id uuid.UUID, from []servicemodels.RequestStatus, to servicemodels.RequestStatus, completedAt *time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRequestRepository) FindUninvoicedDone(companyID uuid.UUID, before time.Time) ([]servicemodels.ServiceRequest, error) {
	return nil, nil
}

func (s *stubRequestRepository) FindCompaniesWithUninvoicedDone(before time.Time) ([]uuid.UUID, error) {
	return nil, nil
}

func (s *stubRequestRepository) MarkInvoiced(ids []uuid.UUID) error { return nil }

func TestSubmitScore(t *testing.T) {
	customerID := uuid.New()
	doneID := uuid.New()
	pendingID := uuid.New()

	requests := &stubRequestRepository{requests: map[uuid.UUID]*servicemodels.ServiceRequest{
		doneID:    {ID: doneID, CustomerID: customerID, Status: servicemodels.RequestDone},
		pendingID: {ID: pendingID, CustomerID: customerID, Status: servicemodels.RequestPending},
	}}
	svc := NewScoreService(newFakeScoreRepository(), requests)

	payload := &models.SubmitScoreRequest{
		RequestID:     doneID,
		QualityScore:  9,
		BehaviorScore: 8,
		TimeScore:     7,
	}

	if _, err := svc.Submit(uuid.New(), payload); err != ErrNotScoreCustomer {
		t.Fatalf("Submit(stranger) error = %v, want ErrNotScoreCustomer", err)
	}

	pendingPayload := *payload
	pendingPayload.RequestID = pendingID
	if _, err := svc.Submit(customerID, &pendingPayload); err != ErrRequestNotDone {
		t.Fatalf("Submit(pending) error = %v, want ErrRequestNotDone", err)
	}

	score, err := svc.Submit(customerID, payload)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := score.Average(); got < 7.99 || got > 8.01 {
		t.Errorf("Average() = %v, want 8", got)
	}

	if _, err := svc.Submit(customerID, payload); err != ErrAlreadyScored {
		t.Fatalf("second Submit() error = %v, want ErrAlreadyScored", err)
	}

	if _, err := svc.GetForRequest(doneID); err != nil {
		t.Errorf("GetForRequest() error = %v", err)
	}
	if _, err := svc.GetForRequest(uuid.New()); err != ErrScoreNotFound {
		t.Errorf("GetForRequest(unknown) error = %v, want ErrScoreNotFound", err)
	}
}
