package database

import (
	"fmt"

	authmodels "komakresan-backend/internal/apps/auth/models"
	companymodels "komakresan-backend/internal/apps/company/models"
	industrymodels "komakresan-backend/internal/apps/industry/models"
	invoicemodels "komakresan-backend/internal/apps/invoice/models"
	otpmodels "komakresan-backend/internal/apps/otp/models"
	paymentmodels "komakresan-backend/internal/apps/payment/models"
	scoremodels "komakresan-backend/internal/apps/score/models"
	servicemodels "komakresan-backend/internal/apps/service/models"
	usermodels "komakresan-backend/internal/apps/user/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds database connection parameters
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConnection opens a PostgreSQL connection and runs migrations
func NewConnection(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usermodels.IDCardInfo{},
		&usermodels.User{},
		&otpmodels.OneTimePassword{},
		&authmodels.RegistrationOTP{},
		&authmodels.LoginOTP{},
		&authmodels.PasswordResetOTP{},
		&industrymodels.IndustryCategory{},
		&industrymodels.ServiceIndustry{},
		&companymodels.Company{},
		&servicemodels.Service{},
		&servicemodels.ServiceRequest{},
		&scoremodels.ServiceScore{},
		&invoicemodels.Invoice{},
		&invoicemodels.InvoiceItem{},
		&paymentmodels.PaymentInvoice{},
		&paymentmodels.GatewayConfig{},
	)
}
