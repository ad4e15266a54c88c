package service

import (
	"sync"
	"testing"
	"time"

	companymodels "komakresan-backend/internal/apps/company/models"
	"komakresan-backend/internal/apps/invoice/models"
	servicemodels "komakresan-backend/internal/apps/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*models.Invoice
}

func newFakeInvoiceRepository() *fakeInvoiceRepository {
	return &fakeInvoiceRepository{invoices: make(map[uuid.UUID]*models.Invoice)}
}

func (f *fakeInvoiceRepository) Create(invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	cp := *invoice
	f.invoices[invoice.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepository) FindByID(id uuid.UUID) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *invoice
	return &cp, nil
}

func (f *fakeInvoiceRepository) FindByCompany(companyID uuid.UUID) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invoice
	for _, invoice := range f.invoices {
		if invoice.CompanyID == companyID {
			out = append(out, *invoice)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepository) MarkPaid(id uuid.UUID, paidAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[id]
	if !ok || invoice.Status != models.InvoiceUnpaid {
		return 0, nil
	}
	invoice.Status = models.InvoicePaid
	invoice.PaidAt = &paidAt
	return 1, nil
}

type fakeRequestRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*servicemodels.ServiceRequest
}

func newFakeRequestRepository() *fakeRequestRepository {
	return &fakeRequestRepository{requests: make(map[uuid.UUID]*servicemodels.ServiceRequest)}
}

func (f *fakeRequestRepository) Create(req *servicemodels.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepository) FindByID(id uuid.UUID) (*servicemodels.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (f *fakeRequestRepository) FindByCustomer(customerID uuid.UUID) ([]servicemodels.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepository) FindByCompany(companyID uuid.UUID) ([]servicemodels.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepository) UpdateStatus(id uuid.UUID, from []servicemodels.RequestStatus, to servicemodels.RequestStatus, completedAt *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return 0, nil
	}
	for _, status := range from {
		if req.Status == status {
			req.Status = to
			if completedAt != nil {
				req.CompletedAt = completedAt
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRequestRepository) FindUninvoicedDone(companyID uuid.UUID, before time.Time) ([]servicemodels.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []servicemodels.ServiceRequest
	for _, req := range f.requests {
		if req.Service == nil || req.Service.CompanyID != companyID {
			continue
		}
		if req.Status != servicemodels.RequestDone || req.Invoiced {
			continue
		}
		if req.CompletedAt == nil || !req.CompletedAt.Before(before) {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeRequestRepository) FindCompaniesWithUninvoicedDone(before time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, req := range f.requests {
		if req.Service == nil || req.Status != servicemodels.RequestDone || req.Invoiced {
			continue
		}
		if req.CompletedAt == nil || !req.CompletedAt.Before(before) {
			continue
		}
		if !seen[req.Service.CompanyID] {
			seen[req.Service.CompanyID] = true
			out = append(out, req.Service.CompanyID)
		}
	}
	return out, nil
}

func (f *fakeRequestRepository) MarkInvoiced(ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if req, ok := f.requests[id]; ok {
			req.Invoiced = true
		}
	}
	return nil
}

type fakeCompanyRepository struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*companymodels.Company
}

func newFakeCompanyRepository() *fakeCompanyRepository {
	return &fakeCompanyRepository{companies: make(map[uuid.UUID]*companymodels.Company)}
}

func (f *fakeCompanyRepository) Create(company *companymodels.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepository) FindByID(id uuid.UUID) (*companymodels.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return company, nil
}

func (f *fakeCompanyRepository) FindBySlug(slug string) (*companymodels.Company, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) FindByEmployer(employerID uuid.UUID) ([]companymodels.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) FindAll(validatedOnly bool) ([]companymodels.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) ExistsByName(name string) (bool, error) { return false, nil }

func (f *fakeCompanyRepository) Update(company *companymodels.Company) error { return nil }

func (f *fakeCompanyRepository) SetValidated(id uuid.UUID, validated bool) (int64, error) {
	return 0, nil
}

func (f *fakeCompanyRepository) Delete(id uuid.UUID) error { return nil }

func doneRequest(companyID uuid.UUID, price int64, completedAt time.Time) *servicemodels.ServiceRequest {
	return &servicemodels.ServiceRequest{
		ID:          uuid.New(),
		ServiceID:   uuid.New(),
		CustomerID:  uuid.New(),
		Status:      servicemodels.RequestDone,
		CompletedAt: &completedAt,
		Service: &servicemodels.Service{
			ID:        uuid.New(),
			CompanyID: companyID,
			Name:      "pipe repair",
			Price:     price,
		},
	}
}

func TestGenerateMonthlyInvoices(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepository()
	requestRepo := newFakeRequestRepository()
	companyRepo := newFakeCompanyRepository()
	svc := NewInvoiceService(invoiceRepo, requestRepo, companyRepo)

	now := time.Date(2024, time.March, 1, 0, 30, 0, 0, time.UTC)
	lastMonth := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

	companyA := uuid.New()
	companyB := uuid.New()
	requestRepo.Create(doneRequest(companyA, 1500, lastMonth))
	requestRepo.Create(doneRequest(companyA, 2500, lastMonth.Add(24*time.Hour)))
	requestRepo.Create(doneRequest(companyB, 900, lastMonth))

	// completed inside the current month, must not be billed yet
	requestRepo.Create(doneRequest(companyA, 9999, now.Add(time.Hour)))

	created, err := svc.GenerateMonthlyInvoices(now)
	if err != nil {
		t.Fatalf("GenerateMonthlyInvoices() error = %v", err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	invoicesA, _ := invoiceRepo.FindByCompany(companyA)
	if len(invoicesA) != 1 {
		t.Fatalf("company A invoices = %d, want 1", len(invoicesA))
	}
	if invoicesA[0].TotalAmount != 4000 {
		t.Errorf("company A total = %d, want 4000", invoicesA[0].TotalAmount)
	}
	if len(invoicesA[0].Items) != 2 {
		t.Errorf("company A items = %d, want 2", len(invoicesA[0].Items))
	}

	// a second run over the same period must bill nothing new
	created, err = svc.GenerateMonthlyInvoices(now)
	if err != nil {
		t.Fatalf("second GenerateMonthlyInvoices() error = %v", err)
	}
	if created != 0 {
		t.Errorf("second run created = %d, want 0", created)
	}
}

func TestMarkPaidOnlyOnce(t *testing.T) {
	invoiceRepo := newFakeInvoiceRepository()
	requestRepo := newFakeRequestRepository()
	companyRepo := newFakeCompanyRepository()
	svc := NewInvoiceService(invoiceRepo, requestRepo, companyRepo)

	invoice := &models.Invoice{CompanyID: uuid.New(), Status: models.InvoiceUnpaid, TotalAmount: 100}
	if err := invoiceRepo.Create(invoice); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	paidAt := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	if err := svc.MarkPaid(invoice.ID, paidAt); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}
	if err := svc.MarkPaid(invoice.ID, paidAt.Add(time.Minute)); err != ErrInvoicePaid {
		t.Errorf("second MarkPaid() error = %v, want ErrInvoicePaid", err)
	}
	if err := svc.MarkPaid(uuid.New(), paidAt); err != ErrInvoiceNotFound {
		t.Errorf("MarkPaid(unknown) error = %v, want ErrInvoiceNotFound", err)
	}
}
