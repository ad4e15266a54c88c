package service

import (
	"errors"

	"komakresan-backend/internal/apps/industry/models"
	"komakresan-backend/internal/apps/industry/repository"
	"komakresan-backend/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("industry category not found")
	ErrIndustryNotFound = errors.New("service industry not found")
)

// IndustryService defines the business logic for the industry catalog
type IndustryService interface {
	CreateCategory(req models.CreateCategoryRequest) (*models.IndustryCategory, error)
	ListCategories() ([]models.IndustryCategory, error)
	CreateIndustry(req models.CreateIndustryRequest) (*models.ServiceIndustry, error)
	ListIndustries() ([]models.ServiceIndustry, error)
	GetIndustryBySlug(slug string) (*models.ServiceIndustry, error)
	UpdateIndustry(id uuid.UUID, req models.UpdateIndustryRequest) (*models.ServiceIndustry, error)
	DeleteIndustry(id uuid.UUID) error
}

// industryService implements IndustryService
type industryService struct {
	repo repository.IndustryRepository
}

// NewIndustryService creates a new instance of IndustryService
func NewIndustryService(repo repository.IndustryRepository) IndustryService {
	return &industryService{repo: repo}
}

// CreateCategory creates an industry category with a derived slug
func (s *industryService) CreateCategory(req models.CreateCategoryRequest) (*models.IndustryCategory, error) {
	category := &models.IndustryCategory{
		Name: req.Name,
		Slug: utils.Slugify(req.Name),
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories
func (s *industryService) ListCategories() ([]models.IndustryCategory, error) {
	return s.repo.FindAllCategories()
}

// CreateIndustry creates a service industry inside an existing category
func (s *industryService) CreateIndustry(req models.CreateIndustryRequest) (*models.ServiceIndustry, error) {
	if _, err := s.repo.FindCategoryByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	industry := &models.ServiceIndustry{
		Name:            req.Name,
		Slug:            utils.Slugify(req.Name),
		CategoryID:      req.CategoryID,
		PricePerService: req.PricePerService,
	}
	if err := s.repo.CreateIndustry(industry); err != nil {
		return nil, err
	}
	return industry, nil
}

// ListIndustries lists all industries
func (s *industryService) ListIndustries() ([]models.ServiceIndustry, error) {
	return s.repo.FindAllIndustries()
}

// GetIndustryBySlug retrieves an industry by its slug
func (s *industryService) GetIndustryBySlug(slug string) (*models.ServiceIndustry, error) {
	industry, err := s.repo.FindIndustryBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndustryNotFound
		}
		return nil, err
	}
	return industry, nil
}

// UpdateIndustry applies a partial update to an industry
func (s *industryService) UpdateIndustry(id uuid.UUID, req models.UpdateIndustryRequest) (*models.ServiceIndustry, error) {
	industry, err := s.repo.FindIndustryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndustryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		industry.Name = *req.Name
		industry.Slug = utils.Slugify(*req.Name)
	}
	if req.PricePerService != nil {
		industry.PricePerService = *req.PricePerService
	}

	if err := s.repo.UpdateIndustry(industry); err != nil {
		return nil, err
	}
	return industry, nil
}

// DeleteIndustry removes an industry
func (s *industryService) DeleteIndustry(id uuid.UUID) error {
	if _, err := s.repo.FindIndustryByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIndustryNotFound
		}
		return err
	}
	return s.repo.DeleteIndustry(id)
}
