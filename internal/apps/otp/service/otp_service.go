package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"komakresan-backend/internal/apps/otp/models"
	"komakresan-backend/internal/apps/otp/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to flow adapters
var (
	ErrOTPNotFound = errors.New("otp not found")
	ErrInactive    = errors.New("otp is expired or already used")
	ErrInvalidCode = errors.New("invalid otp code")
)

// OTPService defines the one-time password engine. It is the only component
// that mutates OTP status; auth flows consume it through Issue and Validate.
type OTPService interface {
	Issue(phone string, ttl time.Duration) (*models.OneTimePassword, error)
	ResolveStatus(otp *models.OneTimePassword) (models.Status, error)
	Validate(token, code string) (*models.OneTimePassword, error)
	Discard(token string) error
	SweepExpired(olderThan time.Duration) (int64, error)
}

// otpService implements OTPService
type otpService struct {
	repo     repository.OTPRepository
	provider SMSProvider
	now      func() time.Time
}

// NewOTPService creates a new instance of OTPService
func NewOTPService(repo repository.OTPRepository, provider SMSProvider) OTPService {
	return &otpService{
		repo:     repo,
		provider: provider,
		now:      time.Now,
	}
}

// generateCode returns a random 6-digit code uniform over [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue creates an ACTIVE record with a fresh token and code and hands the
// code to the SMS provider. The caller gets the record back for the token and
// expiry; the plaintext code never goes into an HTTP response.
func (s *otpService) Issue(phone string, ttl time.Duration) (*models.OneTimePassword, error) {
	if ttl <= 0 {
		ttl = models.DefaultTTL
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	otp := &models.OneTimePassword{
		Token:     uuid.NewString(),
		Code:      code,
		Status:    models.StatusActive,
		ExpiresAt: s.now().Add(ttl),
	}

	if err := s.repo.Create(otp); err != nil {
		return nil, err
	}

	if err := s.provider.SendOTP(phone, code); err != nil {
		return nil, fmt.Errorf("failed to send otp: %w", err)
	}

	return otp, nil
}

// ResolveStatus evaluates the current state of a record. A used code is
// reported as USED even past its expiry; expiry is persisted lazily.
func (s *otpService) ResolveStatus(otp *models.OneTimePassword) (models.Status, error) {
	if otp.IsUsed {
		return models.StatusUsed, nil
	}
	if s.now().After(otp.ExpiresAt) {
		if otp.Status != models.StatusExpired {
			if err := s.repo.MarkExpired(otp.Token); err != nil {
				return "", err
			}
			otp.Status = models.StatusExpired
		}
		return models.StatusExpired, nil
	}
	return models.StatusActive, nil
}

// Validate checks the submitted code against the record behind token and, on
// success, consumes the record. Consumption is a single conditional update so
// that concurrent validations succeed at most once per token. When it fails
// with ErrInactive or ErrInvalidCode the record is still returned so callers
// can clean up their binding.
func (s *otpService) Validate(token, code string) (*models.OneTimePassword, error) {
	otp, err := s.repo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}

	status, err := s.ResolveStatus(otp)
	if err != nil {
		return nil, err
	}
	if status != models.StatusActive {
		return otp, ErrInactive
	}

	if code != otp.Code {
		return otp, ErrInvalidCode
	}

	consumed, err := s.repo.ConsumeActive(token, s.now())
	if err != nil {
		return nil, err
	}
	if consumed == 0 {
		// Lost the race to a concurrent validation or the record just expired.
		return otp, ErrInactive
	}

	otp.Status = models.StatusUsed
	otp.IsUsed = true
	return otp, nil
}

// Discard removes an OTP record, used when a flow cleans up a stale token
func (s *otpService) Discard(token string) error {
	return s.repo.Delete(token)
}

// SweepExpired deletes records whose expiry passed more than olderThan ago
func (s *otpService) SweepExpired(olderThan time.Duration) (int64, error) {
	return s.repo.DeleteExpiredBefore(s.now().Add(-olderThan))
}
