package service

import (
	"errors"
	"time"

	"komakresan-backend/internal/apps/auth/models"
	"komakresan-backend/internal/apps/auth/repository"
	otpmodels "komakresan-backend/internal/apps/otp/models"
	otpservice "komakresan-backend/internal/apps/otp/service"
	usermodels "komakresan-backend/internal/apps/user/models"
	userrepository "komakresan-backend/internal/apps/user/repository"
	"komakresan-backend/pkg/password"
	"komakresan-backend/pkg/token"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers
var (
	ErrUnknownPhone       = errors.New("no account matches this phone number")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPhoneTaken         = errors.New("phone number is already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordIsUsername = errors.New("password must not equal the username")
	ErrInvalidUserType    = errors.New("unknown user type")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrInvalidCredentials = errors.New("invalid phone or password")
)

// AuthService owns the three OTP-backed authentication flows plus the
// password login path. All OTP state transitions go through the OTP engine;
// this service only manages the flow bindings and their side effects.
type AuthService interface {
	StartRegistration(req models.RegisterRequest) (*otpmodels.IssueOTPResponse, error)
	CompleteRegistration(otpToken, code string) (*usermodels.UserResponse, *token.Pair, error)

	StartLogin(phone string) (*otpmodels.IssueOTPResponse, error)
	CompleteLogin(otpToken, code string) (*token.Pair, error)
	PasswordLogin(phone, plainPassword string) (*token.Pair, error)

	StartPasswordReset(phone string) (*otpmodels.IssueOTPResponse, error)
	CompletePasswordReset(otpToken string, req models.ResetPasswordRequest) error
}

// authService implements AuthService
type authService struct {
	otps     otpservice.OTPService
	bindings repository.BindingRepository
	users    userrepository.UserRepository
	tokens   *token.Maker
	otpTTL   time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	otps otpservice.OTPService,
	bindings repository.BindingRepository,
	users userrepository.UserRepository,
	tokens *token.Maker,
	otpTTL time.Duration,
) AuthService {
	if otpTTL <= 0 {
		otpTTL = otpmodels.DefaultTTL
	}
	return &authService{
		otps:     otps,
		bindings: bindings,
		users:    users,
		tokens:   tokens,
		otpTTL:   otpTTL,
	}
}

func validatePasswordPair(plain, conf, username string) error {
	if err := password.ValidatePolicy(plain); err != nil {
		return err
	}
	if plain != conf {
		return ErrPasswordMismatch
	}
	if plain == username {
		return ErrPasswordIsUsername
	}
	return nil
}

// StartRegistration validates the candidate account fields, issues an OTP and
// stores the candidate alongside it.
func (s *authService) StartRegistration(req models.RegisterRequest) (*otpmodels.IssueOTPResponse, error) {
	if err := validatePasswordPair(req.Password, req.PasswordConf, req.Username); err != nil {
		return nil, err
	}

	userType := usermodels.UserType(req.UserType)
	if !usermodels.ValidUserType(userType) {
		return nil, ErrInvalidUserType
	}

	if taken, err := s.users.ExistsByUsername(req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.users.ExistsByPhone(req.Phone); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrPhoneTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	otp, err := s.otps.Issue(req.Phone, s.otpTTL)
	if err != nil {
		return nil, err
	}

	binding := &models.RegistrationOTP{
		OTPID:        otp.ID,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashed,
		FullName:     req.FullName,
		UserType:     userType,
	}
	if err := s.bindings.CreateRegistration(binding); err != nil {
		return nil, err
	}

	resp := otp.ToIssueResponse()
	return &resp, nil
}

// discardRegistration drops a stale registration binding together with its OTP
func (s *authService) discardRegistration(otp *otpmodels.OneTimePassword) {
	if otp == nil {
		return
	}
	if err := s.bindings.DeleteRegistration(otp.ID); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale registration binding")
	}
	if err := s.otps.Discard(otp.Token); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale otp")
	}
}

// CompleteRegistration validates the code and materializes the account from
// the stored candidate fields.
func (s *authService) CompleteRegistration(otpToken, code string) (*usermodels.UserResponse, *token.Pair, error) {
	otp, err := s.otps.Validate(otpToken, code)
	if err != nil {
		if errors.Is(err, otpservice.ErrInactive) {
			s.discardRegistration(otp)
		}
		return nil, nil, err
	}

	binding, err := s.bindings.FindRegistrationByOTPID(otp.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, otpservice.ErrOTPNotFound
		}
		return nil, nil, err
	}

	user := &usermodels.User{
		Username:     binding.Username,
		Email:        binding.Email,
		Phone:        binding.Phone,
		PasswordHash: binding.PasswordHash,
		FullName:     binding.FullName,
		UserType:     binding.UserType,
		Status:       usermodels.AccountActive,
		IsActive:     true,
		IsAdmin:      binding.UserType == usermodels.UserTypeAdmin,
		IDCardInfo:   &usermodels.IDCardInfo{Status: usermodels.IDCardPending},
	}
	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}

	s.discardRegistration(otp)

	pair, err := s.tokens.GeneratePair(user.ID, string(user.UserType))
	if err != nil {
		return nil, nil, err
	}

	resp := user.ToResponse()
	return &resp, pair, nil
}

// StartLogin issues an OTP bound to the account behind the phone number
func (s *authService) StartLogin(phone string) (*otpmodels.IssueOTPResponse, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownPhone
		}
		return nil, err
	}

	otp, err := s.otps.Issue(phone, s.otpTTL)
	if err != nil {
		return nil, err
	}

	binding := &models.LoginOTP{
		OTPID:  otp.ID,
		UserID: user.ID,
		Phone:  phone,
	}
	if err := s.bindings.CreateLogin(binding); err != nil {
		return nil, err
	}

	resp := otp.ToIssueResponse()
	return &resp, nil
}

func (s *authService) discardLogin(otp *otpmodels.OneTimePassword) {
	if otp == nil {
		return
	}
	if err := s.bindings.DeleteLogin(otp.ID); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale login binding")
	}
	if err := s.otps.Discard(otp.Token); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale otp")
	}
}

// CompleteLogin validates the code and issues session tokens for the bound user
func (s *authService) CompleteLogin(otpToken, code string) (*token.Pair, error) {
	otp, err := s.otps.Validate(otpToken, code)
	if err != nil {
		if errors.Is(err, otpservice.ErrInactive) {
			s.discardLogin(otp)
		}
		return nil, err
	}

	binding, err := s.bindings.FindLoginByOTPID(otp.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, otpservice.ErrOTPNotFound
		}
		return nil, err
	}

	user, err := s.users.FindByID(binding.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive || user.Status != usermodels.AccountActive {
		return nil, ErrInactiveAccount
	}

	s.discardLogin(otp)

	return s.tokens.GeneratePair(user.ID, string(user.UserType))
}

// PasswordLogin is the OTP-free login path sharing only the account lookup
func (s *authService) PasswordLogin(phone, plainPassword string) (*token.Pair, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || user.Status != usermodels.AccountActive {
		return nil, ErrInactiveAccount
	}

	return s.tokens.GeneratePair(user.ID, string(user.UserType))
}

// StartPasswordReset issues an OTP bound to the account behind the phone number
func (s *authService) StartPasswordReset(phone string) (*otpmodels.IssueOTPResponse, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownPhone
		}
		return nil, err
	}

	otp, err := s.otps.Issue(phone, s.otpTTL)
	if err != nil {
		return nil, err
	}

	binding := &models.PasswordResetOTP{
		OTPID:  otp.ID,
		UserID: user.ID,
		Phone:  phone,
	}
	if err := s.bindings.CreateReset(binding); err != nil {
		return nil, err
	}

	resp := otp.ToIssueResponse()
	return &resp, nil
}

func (s *authService) discardReset(otp *otpmodels.OneTimePassword) {
	if otp == nil {
		return
	}
	if err := s.bindings.DeleteReset(otp.ID); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale reset binding")
	}
	if err := s.otps.Discard(otp.Token); err != nil {
		log.Error().Err(err).Str("token", otp.Token).Msg("failed to delete stale otp")
	}
}

// CompletePasswordReset validates the code and overwrites the account credential
func (s *authService) CompletePasswordReset(otpToken string, req models.ResetPasswordRequest) error {
	otp, err := s.otps.Validate(otpToken, req.Code)
	if err != nil {
		if errors.Is(err, otpservice.ErrInactive) {
			s.discardReset(otp)
		}
		return err
	}

	binding, err := s.bindings.FindResetByOTPID(otp.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return otpservice.ErrOTPNotFound
		}
		return err
	}

	user, err := s.users.FindByID(binding.UserID)
	if err != nil {
		return err
	}
	if !user.IsActive || user.Status != usermodels.AccountActive {
		return ErrInactiveAccount
	}

	if err := password.ValidatePolicy(req.Password); err != nil {
		return err
	}
	if req.Password != req.PasswordConf {
		return ErrPasswordMismatch
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	if err := s.users.Update(user); err != nil {
		return err
	}

	s.discardReset(otp)
	return nil
}
