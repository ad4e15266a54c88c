package repository

import (
	"time"

	"komakresan-backend/internal/apps/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRepository defines the interface for service catalog data operations
type ServiceRepository interface {
	Create(svc *models.Service) error
	FindByID(id uuid.UUID) (*models.Service, error)
	FindBySlug(slug string) (*models.Service, error)
	FindByCompany(companyID uuid.UUID) ([]models.Service, error)
	FindActive(industryID *uuid.UUID) ([]models.Service, error)
	Update(svc *models.Service) error
	Delete(id uuid.UUID) error
}

// RequestRepository defines the interface for service request data operations
type RequestRepository interface {
	Create(req *models.ServiceRequest) error
	FindByID(id uuid.UUID) (*models.ServiceRequest, error)
	FindByCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error)
	FindByCompany(companyID uuid.UUID) ([]models.ServiceRequest, error)
	UpdateStatus(id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, completedAt *time.Time) (int64, error)
	FindUninvoicedDone(companyID uuid.UUID, before time.Time) ([]models.ServiceRequest, error)
	FindCompaniesWithUninvoicedDone(before time.Time) ([]uuid.UUID, error)
	MarkInvoiced(ids []uuid.UUID) error
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new instance of ServiceRepository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(svc *models.Service) error {
	return r.db.Create(svc).Error
}

func (r *serviceRepository) FindByID(id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	err := r.db.Preload("Company").Preload("Industry").Where("id = ?", id).First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindBySlug(slug string) (*models.Service, error) {
	var svc models.Service
	err := r.db.Preload("Company").Preload("Industry").Where("slug = ?", slug).First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByCompany(companyID uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("company_id = ?", companyID).Order("created_at desc").Find(&services).Error
	return services, err
}

func (r *serviceRepository) FindActive(industryID *uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	q := r.db.Preload("Company").Where("is_active = ?", true)
	if industryID != nil {
		q = q.Where("industry_id = ?", *industryID)
	}
	err := q.Order("name asc").Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(svc *models.Service) error {
	return r.db.Save(svc).Error
}

func (r *serviceRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Service{}).Error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new instance of RequestRepository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(req *models.ServiceRequest) error {
	return r.db.Create(req).Error
}

func (r *requestRepository) FindByID(id uuid.UUID) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := r.db.Preload("Service").Preload("Service.Company").Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Service").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindByCompany(companyID uuid.UUID) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Service").Preload("Customer").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("services.company_id = ?", companyID).
		Order("service_requests.created_at desc").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus transitions a request only when its current status is in the
// from set, so concurrent transitions cannot double-apply
func (r *requestRepository) UpdateStatus(id uuid.UUID, from []models.RequestStatus, to models.RequestStatus, completedAt *time.Time) (int64, error) {
	updates := map[string]interface{}{"status": to}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	res := r.db.Model(&models.ServiceRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *requestRepository) FindUninvoicedDone(companyID uuid.UUID, before time.Time) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Service").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("services.company_id = ?", companyID).
		Where("service_requests.status = ? AND service_requests.invoiced = ?", models.RequestDone, false).
		Where("service_requests.completed_at < ?", before).
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindCompaniesWithUninvoicedDone(before time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.ServiceRequest{}).
		Distinct("services.company_id").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("service_requests.status = ? AND service_requests.invoiced = ?", models.RequestDone, false).
		Where("service_requests.completed_at < ?", before).
		Pluck("services.company_id", &ids).Error
	return ids, err
}

func (r *requestRepository) MarkInvoiced(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.ServiceRequest{}).
		Where("id IN ?", ids).
		Update("invoiced", true).Error
}
