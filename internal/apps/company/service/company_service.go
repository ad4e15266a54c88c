package service

import (
	"errors"

	"komakresan-backend/internal/apps/company/models"
	"komakresan-backend/internal/apps/company/repository"
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrCompanyNameTaken = errors.New("a company with this name already exists")
	ErrNotCompanyOwner  = errors.New("only the company owner can perform this action")
)

// CompanyService defines the interface for company business logic
type CompanyService interface {
	Create(employerID uuid.UUID, req *models.CreateCompanyRequest) (*models.Company, error)
	GetBySlug(slug string) (*models.Company, error)
	ListMine(employerID uuid.UUID) ([]models.Company, error)
	List(includeUnvalidated bool) ([]models.Company, error)
	Update(id uuid.UUID, actorID uuid.UUID, actorType string, req *models.UpdateCompanyRequest) (*models.Company, error)
	SetValidated(id uuid.UUID, validated bool) error
	Delete(id uuid.UUID, actorID uuid.UUID, actorType string) error
}

type companyService struct {
	repo repository.CompanyRepository
}

// NewCompanyService creates a new instance of CompanyService
func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Create(employerID uuid.UUID, req *models.CreateCompanyRequest) (*models.Company, error) {
	taken, err := s.repo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCompanyNameTaken
	}

	company := &models.Company{
		EmployerID:        employerID,
		Name:              req.Name,
		Slug:              utils.Slugify(req.Name),
		Description:       req.Description,
		Website:           req.Website,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		PostalCode:        req.PostalCode,
		FoundedDate:       req.FoundedDate,
		NumberOfEmployees: req.NumberOfEmployees,
	}
	if err := s.repo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetBySlug(slug string) (*models.Company, error) {
	company, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) ListMine(employerID uuid.UUID) ([]models.Company, error) {
	return s.repo.FindByEmployer(employerID)
}

func (s *companyService) List(includeUnvalidated bool) ([]models.Company, error) {
	return s.repo.FindAll(!includeUnvalidated)
}

func (s *companyService) Update(id uuid.UUID, actorID uuid.UUID, actorType string, req *models.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if company.EmployerID != actorID && actorType != string(usermodels.UserTypeAdmin) {
		return nil, ErrNotCompanyOwner
	}

	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.PostalCode != nil {
		company.PostalCode = *req.PostalCode
	}
	if req.NumberOfEmployees != nil {
		company.NumberOfEmployees = req.NumberOfEmployees
	}

	if err := s.repo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) SetValidated(id uuid.UUID, validated bool) error {
	affected, err := s.repo.SetValidated(id, validated)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *companyService) Delete(id uuid.UUID, actorID uuid.UUID, actorType string) error {
	company, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if company.EmployerID != actorID && actorType != string(usermodels.UserTypeAdmin) {
		return ErrNotCompanyOwner
	}
	return s.repo.Delete(id)
}
