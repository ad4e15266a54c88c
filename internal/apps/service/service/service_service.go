package service

import (
	"errors"
	"time"

	companyrepository "komakresan-backend/internal/apps/company/repository"
	"komakresan-backend/internal/apps/service/models"
	"komakresan-backend/internal/apps/service/repository"
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrRequestNotFound      = errors.New("service request not found")
	ErrCompanyNotValidated  = errors.New("company is not validated yet")
	ErrNotServiceOwner      = errors.New("only the company owner can manage this service")
	ErrInvalidTransition    = errors.New("request cannot change to that status")
	ErrServiceNotActive     = errors.New("service is not accepting requests")
	ErrNotRequestCustomer   = errors.New("only the requesting customer can perform this action")
	ErrNotRequestOwnCompany = errors.New("only the providing company can perform this action")
)

// CatalogService defines the interface for service catalog business logic
type CatalogService interface {
	Publish(actorID uuid.UUID, actorType string, req *models.CreateServicePayload) (*models.Service, error)
	GetBySlug(slug string) (*models.Service, error)
	ListActive(industryID *uuid.UUID) ([]models.Service, error)
	ListByCompany(companyID uuid.UUID) ([]models.Service, error)
	Update(id uuid.UUID, actorID uuid.UUID, actorType string, req *models.UpdateServicePayload) (*models.Service, error)
	Delete(id uuid.UUID, actorID uuid.UUID, actorType string) error
}

// RequestService defines the interface for service request business logic
type RequestService interface {
	Place(customerID uuid.UUID, req *models.PlaceRequestPayload) (*models.ServiceRequest, error)
	ListForCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error)
	ListForCompany(companyID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.ServiceRequest, error)
	Accept(id uuid.UUID, actorID uuid.UUID, actorType string) error
	Complete(id uuid.UUID, actorID uuid.UUID, actorType string) error
	Cancel(id uuid.UUID, actorID uuid.UUID, actorType string) error
}

type catalogService struct {
	services  repository.ServiceRepository
	companies companyrepository.CompanyRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(services repository.ServiceRepository, companies companyrepository.CompanyRepository) CatalogService {
	return &catalogService{services: services, companies: companies}
}

func isAdmin(actorType string) bool {
	return actorType == string(usermodels.UserTypeAdmin)
}

func (s *catalogService) ownedCompany(companyID, actorID uuid.UUID, actorType string) error {
	company, err := s.companies.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if company.EmployerID != actorID && !isAdmin(actorType) {
		return ErrNotServiceOwner
	}
	if !company.IsValidated {
		return ErrCompanyNotValidated
	}
	return nil
}

func (s *catalogService) Publish(actorID uuid.UUID, actorType string, req *models.CreateServicePayload) (*models.Service, error) {
	if err := s.ownedCompany(req.CompanyID, actorID, actorType); err != nil {
		return nil, err
	}

	svc := &models.Service{
		CompanyID:   req.CompanyID,
		IndustryID:  req.IndustryID,
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name) + "-" + uuid.NewString()[:8],
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := s.services.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) GetBySlug(slug string) (*models.Service, error) {
	svc, err := s.services.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) ListActive(industryID *uuid.UUID) ([]models.Service, error) {
	return s.services.FindActive(industryID)
}

func (s *catalogService) ListByCompany(companyID uuid.UUID) ([]models.Service, error) {
	return s.services.FindByCompany(companyID)
}

func (s *catalogService) Update(id uuid.UUID, actorID uuid.UUID, actorType string, req *models.UpdateServicePayload) (*models.Service, error) {
	svc, err := s.services.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.Company != nil && svc.Company.EmployerID != actorID && !isAdmin(actorType) {
		return nil, ErrNotServiceOwner
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.services.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Delete(id uuid.UUID, actorID uuid.UUID, actorType string) error {
	svc, err := s.services.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if svc.Company != nil && svc.Company.EmployerID != actorID && !isAdmin(actorType) {
		return ErrNotServiceOwner
	}
	return s.services.Delete(id)
}

type requestService struct {
	requests  repository.RequestRepository
	services  repository.ServiceRepository
	companies companyrepository.CompanyRepository
	now       func() time.Time
}

// NewRequestService creates a new instance of RequestService
func NewRequestService(requests repository.RequestRepository, services repository.ServiceRepository, companies companyrepository.CompanyRepository) RequestService {
	return &requestService{
		requests:  requests,
		services:  services,
		companies: companies,
		now:       time.Now,
	}
}

func (s *requestService) Place(customerID uuid.UUID, req *models.PlaceRequestPayload) (*models.ServiceRequest, error) {
	svc, err := s.services.FindByID(req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceNotActive
	}

	request := &models.ServiceRequest{
		ServiceID:   req.ServiceID,
		CustomerID:  customerID,
		Status:      models.RequestPending,
		Description: req.Description,
		Address:     req.Address,
	}
	if err := s.requests.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) ListForCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error) {
	return s.requests.FindByCustomer(customerID)
}

func (s *requestService) ListForCompany(companyID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.ServiceRequest, error) {
	company, err := s.companies.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if company.EmployerID != actorID && !isAdmin(actorType) {
		return nil, ErrNotRequestOwnCompany
	}
	return s.requests.FindByCompany(companyID)
}

func (s *requestService) providerTransition(id uuid.UUID, actorID uuid.UUID, actorType string, from []models.RequestStatus, to models.RequestStatus, stamp bool) error {
	request, err := s.requests.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.Service == nil || request.Service.Company == nil {
		return ErrRequestNotFound
	}
	if request.Service.Company.EmployerID != actorID && !isAdmin(actorType) {
		return ErrNotRequestOwnCompany
	}

	var completedAt *time.Time
	if stamp {
		now := s.now().UTC()
		completedAt = &now
	}
	affected, err := s.requests.UpdateStatus(id, from, to, completedAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *requestService) Accept(id uuid.UUID, actorID uuid.UUID, actorType string) error {
	return s.providerTransition(id, actorID, actorType,
		[]models.RequestStatus{models.RequestPending}, models.RequestAccepted, false)
}

func (s *requestService) Complete(id uuid.UUID, actorID uuid.UUID, actorType string) error {
	return s.providerTransition(id, actorID, actorType,
		[]models.RequestStatus{models.RequestAccepted}, models.RequestDone, true)
}

// Cancel is available to the customer while the request is still pending or
// accepted, and to the providing company at any point before completion
func (s *requestService) Cancel(id uuid.UUID, actorID uuid.UUID, actorType string) error {
	request, err := s.requests.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	isCustomer := request.CustomerID == actorID
	isProvider := request.Service != nil && request.Service.Company != nil &&
		request.Service.Company.EmployerID == actorID
	if !isCustomer && !isProvider && !isAdmin(actorType) {
		return ErrNotRequestCustomer
	}

	affected, err := s.requests.UpdateStatus(id,
		[]models.RequestStatus{models.RequestPending, models.RequestAccepted},
		models.RequestCancelled, nil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
