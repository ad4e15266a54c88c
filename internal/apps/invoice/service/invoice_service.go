package service

import (
	"errors"
	"time"

	companyrepository "komakresan-backend/internal/apps/company/repository"
	"komakresan-backend/internal/apps/invoice/models"
	"komakresan-backend/internal/apps/invoice/repository"
	servicerepository "komakresan-backend/internal/apps/service/repository"
	usermodels "komakresan-backend/internal/apps/user/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrNotInvoiceOwner = errors.New("only the billed company owner can view this invoice")
	ErrInvoicePaid     = errors.New("invoice is already paid")
)

// InvoiceService defines the interface for invoice business logic
type InvoiceService interface {
	GenerateMonthlyInvoices(now time.Time) (int, error)
	GetByID(id uuid.UUID, actorID uuid.UUID, actorType string) (*models.Invoice, error)
	ListForCompany(companyID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.Invoice, error)
	MarkPaid(id uuid.UUID, paidAt time.Time) error
}

type invoiceService struct {
	invoices  repository.InvoiceRepository
	requests  servicerepository.RequestRepository
	companies companyrepository.CompanyRepository
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(invoices repository.InvoiceRepository, requests servicerepository.RequestRepository, companies companyrepository.CompanyRepository) InvoiceService {
	return &invoiceService{invoices: invoices, requests: requests, companies: companies}
}

// GenerateMonthlyInvoices bills every company for the service requests it
// completed before the start of the current month. It returns the number of
// invoices created. A failure for one company does not stop the run.
func (s *invoiceService) GenerateMonthlyInvoices(now time.Time) (int, error) {
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodStart := periodEnd.AddDate(0, -1, 0)

	companyIDs, err := s.requests.FindCompaniesWithUninvoicedDone(periodEnd)
	if err != nil {
		return 0, err
	}

	created := 0
	var firstErr error
	for _, companyID := range companyIDs {
		if err := s.invoiceCompany(companyID, periodStart, periodEnd); err != nil {
			log.Error().Err(err).Str("company_id", companyID.String()).Msg("monthly invoice generation failed for company")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created++
	}
	return created, firstErr
}

func (s *invoiceService) invoiceCompany(companyID uuid.UUID, periodStart, periodEnd time.Time) error {
	requests, err := s.requests.FindUninvoicedDone(companyID, periodEnd)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return nil
	}

	invoice := &models.Invoice{
		CompanyID:   companyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      models.InvoiceUnpaid,
	}
	requestIDs := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		amount := int64(0)
		description := ""
		if req.Service != nil {
			amount = req.Service.Price
			description = req.Service.Name
		}
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			RequestID:   req.ID,
			Description: description,
			Amount:      amount,
		})
		invoice.TotalAmount += amount
		requestIDs = append(requestIDs, req.ID)
	}

	if err := s.invoices.Create(invoice); err != nil {
		return err
	}
	return s.requests.MarkInvoiced(requestIDs)
}

func (s *invoiceService) authorize(invoice *models.Invoice, actorID uuid.UUID, actorType string) error {
	if actorType == string(usermodels.UserTypeAdmin) {
		return nil
	}
	if invoice.Company != nil && invoice.Company.EmployerID == actorID {
		return nil
	}
	return ErrNotInvoiceOwner
}

func (s *invoiceService) GetByID(id uuid.UUID, actorID uuid.UUID, actorType string) (*models.Invoice, error) {
	invoice, err := s.invoices.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	if err := s.authorize(invoice, actorID, actorType); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListForCompany(companyID uuid.UUID, actorID uuid.UUID, actorType string) ([]models.Invoice, error) {
	company, err := s.companies.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	if company.EmployerID != actorID && actorType != string(usermodels.UserTypeAdmin) {
		return nil, ErrNotInvoiceOwner
	}
	return s.invoices.FindByCompany(companyID)
}

func (s *invoiceService) MarkPaid(id uuid.UUID, paidAt time.Time) error {
	affected, err := s.invoices.MarkPaid(id, paidAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		invoice, err := s.invoices.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		if invoice.Status == models.InvoicePaid {
			return ErrInvoicePaid
		}
		return ErrInvoiceNotFound
	}
	return nil
}
