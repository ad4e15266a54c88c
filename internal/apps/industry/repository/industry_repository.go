package repository

import (
	"komakresan-backend/internal/apps/industry/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IndustryRepository defines data operations for categories and industries
type IndustryRepository interface {
	CreateCategory(category *models.IndustryCategory) error
	FindAllCategories() ([]models.IndustryCategory, error)
	FindCategoryByID(id uuid.UUID) (*models.IndustryCategory, error)

	CreateIndustry(industry *models.ServiceIndustry) error
	FindAllIndustries() ([]models.ServiceIndustry, error)
	FindIndustryByID(id uuid.UUID) (*models.ServiceIndustry, error)
	FindIndustryBySlug(slug string) (*models.ServiceIndustry, error)
	UpdateIndustry(industry *models.ServiceIndustry) error
	DeleteIndustry(id uuid.UUID) error
}

// industryRepository implements IndustryRepository
type industryRepository struct {
	db *gorm.DB
}

// NewIndustryRepository creates a new instance of IndustryRepository
func NewIndustryRepository(db *gorm.DB) IndustryRepository {
	return &industryRepository{db: db}
}

// CreateCategory creates a new industry category
func (r *industryRepository) CreateCategory(category *models.IndustryCategory) error {
	return r.db.Create(category).Error
}

// FindAllCategories lists all categories ordered by name
func (r *industryRepository) FindAllCategories() ([]models.IndustryCategory, error) {
	var categories []models.IndustryCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID retrieves a category by its ID
func (r *industryRepository) FindCategoryByID(id uuid.UUID) (*models.IndustryCategory, error) {
	var category models.IndustryCategory
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateIndustry creates a new service industry
func (r *industryRepository) CreateIndustry(industry *models.ServiceIndustry) error {
	return r.db.Create(industry).Error
}

// FindAllIndustries lists all industries with their categories
func (r *industryRepository) FindAllIndustries() ([]models.ServiceIndustry, error) {
	var industries []models.ServiceIndustry
	if err := r.db.Preload("Category").Order("name ASC").Find(&industries).Error; err != nil {
		return nil, err
	}
	return industries, nil
}

// FindIndustryByID retrieves an industry by its ID
func (r *industryRepository) FindIndustryByID(id uuid.UUID) (*models.ServiceIndustry, error) {
	var industry models.ServiceIndustry
	if err := r.db.Preload("Category").First(&industry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &industry, nil
}

// FindIndustryBySlug retrieves an industry by its slug
func (r *industryRepository) FindIndustryBySlug(slug string) (*models.ServiceIndustry, error) {
	var industry models.ServiceIndustry
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&industry).Error; err != nil {
		return nil, err
	}
	return &industry, nil
}

// UpdateIndustry updates an existing industry
func (r *industryRepository) UpdateIndustry(industry *models.ServiceIndustry) error {
	return r.db.Save(industry).Error
}

// DeleteIndustry removes an industry by its ID
func (r *industryRepository) DeleteIndustry(id uuid.UUID) error {
	return r.db.Delete(&models.ServiceIndustry{}, "id = ?", id).Error
}
