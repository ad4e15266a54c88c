package repository

import (
	"komakresan-backend/internal/apps/company/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id uuid.UUID) (*models.Company, error)
	FindBySlug(slug string) (*models.Company, error)
	FindByEmployer(employerID uuid.UUID) ([]models.Company, error)
	FindAll(validatedOnly bool) ([]models.Company, error)
	ExistsByName(name string) (bool, error)
	Update(company *models.Company) error
	SetValidated(id uuid.UUID, validated bool) (int64, error)
	Delete(id uuid.UUID) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.Preload("Employer").Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindBySlug(slug string) (*models.Company, error) {
	var company models.Company
	err := r.db.Preload("Employer").Where("slug = ?", slug).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByEmployer(employerID uuid.UUID) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Where("employer_id = ?", employerID).Order("created_at desc").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) FindAll(validatedOnly bool) ([]models.Company, error) {
	var companies []models.Company
	q := r.db.Order("name asc")
	if validatedOnly {
		q = q.Where("is_validated = ?", true)
	}
	err := q.Find(&companies).Error
	return companies, err
}

func (r *companyRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Company{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *companyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) SetValidated(id uuid.UUID, validated bool) (int64, error) {
	res := r.db.Model(&models.Company{}).Where("id = ?", id).Update("is_validated", validated)
	return res.RowsAffected, res.Error
}

func (r *companyRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Company{}).Error
}
