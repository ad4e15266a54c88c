package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"komakresan-backend/internal/apps/auth/models"
	otpmodels "komakresan-backend/internal/apps/otp/models"
	otpservice "komakresan-backend/internal/apps/otp/service"
	usermodels "komakresan-backend/internal/apps/user/models"
	"komakresan-backend/pkg/password"
	"komakresan-backend/pkg/token"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeOTPService is an in-memory OTP engine with the same consumption
// semantics as the real one.
type fakeOTPService struct {
	mu      sync.Mutex
	records map[string]*otpmodels.OneTimePassword
	now     func() time.Time
}

func newFakeOTPService() *fakeOTPService {
	return &fakeOTPService{
		records: make(map[string]*otpmodels.OneTimePassword),
		now:     time.Now,
	}
}

func (f *fakeOTPService) Issue(phone string, ttl time.Duration) (*otpmodels.OneTimePassword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp := &otpmodels.OneTimePassword{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		Code:      "123456",
		Status:    otpmodels.StatusActive,
		ExpiresAt: f.now().Add(ttl),
	}
	f.records[otp.Token] = otp
	return otp, nil
}

func (f *fakeOTPService) ResolveStatus(otp *otpmodels.OneTimePassword) (otpmodels.Status, error) {
	if otp.IsUsed {
		return otpmodels.StatusUsed, nil
	}
	if f.now().After(otp.ExpiresAt) {
		otp.Status = otpmodels.StatusExpired
		return otpmodels.StatusExpired, nil
	}
	return otpmodels.StatusActive, nil
}

func (f *fakeOTPService) Validate(tokenStr, code string) (*otpmodels.OneTimePassword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[tokenStr]
	if !ok {
		return nil, otpservice.ErrOTPNotFound
	}
	if otp.IsUsed || f.now().After(otp.ExpiresAt) {
		return otp, otpservice.ErrInactive
	}
	if code != otp.Code {
		return otp, otpservice.ErrInvalidCode
	}
	otp.IsUsed = true
	otp.Status = otpmodels.StatusUsed
	return otp, nil
}

func (f *fakeOTPService) Discard(tokenStr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, tokenStr)
	return nil
}

func (f *fakeOTPService) SweepExpired(olderThan time.Duration) (int64, error) { return 0, nil }

// fakeBindingRepository is an in-memory BindingRepository
type fakeBindingRepository struct {
	mu            sync.Mutex
	registrations map[uuid.UUID]*models.RegistrationOTP
	logins        map[uuid.UUID]*models.LoginOTP
	resets        map[uuid.UUID]*models.PasswordResetOTP
}

func newFakeBindingRepository() *fakeBindingRepository {
	return &fakeBindingRepository{
		registrations: make(map[uuid.UUID]*models.RegistrationOTP),
		logins:        make(map[uuid.UUID]*models.LoginOTP),
		resets:        make(map[uuid.UUID]*models.PasswordResetOTP),
	}
}

func (f *fakeBindingRepository) CreateRegistration(b *models.RegistrationOTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations[b.OTPID] = b
	return nil
}

func (f *fakeBindingRepository) FindRegistrationByOTPID(otpID uuid.UUID) (*models.RegistrationOTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.registrations[otpID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBindingRepository) DeleteRegistration(otpID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registrations, otpID)
	return nil
}

func (f *fakeBindingRepository) CreateLogin(b *models.LoginOTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins[b.OTPID] = b
	return nil
}

func (f *fakeBindingRepository) FindLoginByOTPID(otpID uuid.UUID) (*models.LoginOTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.logins[otpID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBindingRepository) DeleteLogin(otpID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.logins, otpID)
	return nil
}

func (f *fakeBindingRepository) CreateReset(b *models.PasswordResetOTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets[b.OTPID] = b
	return nil
}

func (f *fakeBindingRepository) FindResetByOTPID(otpID uuid.UUID) (*models.PasswordResetOTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.resets[otpID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBindingRepository) DeleteReset(otpID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.resets, otpID)
	return nil
}

// fakeUserRepository is an in-memory UserRepository
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*usermodels.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*usermodels.User)}
}

func (f *fakeUserRepository) Create(u *usermodels.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepository) FindByID(id uuid.UUID) (*usermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByUsername(username string) (*usermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByPhone(phone string) (*usermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) ExistsByUsername(username string) (bool, error) {
	_, err := f.FindByUsername(username)
	return err == nil, nil
}

func (f *fakeUserRepository) ExistsByEmail(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) ExistsByPhone(phone string) (bool, error) {
	_, err := f.FindByPhone(phone)
	return err == nil, nil
}

func (f *fakeUserRepository) Update(u *usermodels.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepository) UpdateIDCard(info *usermodels.IDCardInfo) error { return nil }

func (f *fakeUserRepository) FindAllPaginated(page, pageSize int) ([]usermodels.User, int64, error) {
	return nil, 0, nil
}

type testEnv struct {
	otps     *fakeOTPService
	bindings *fakeBindingRepository
	users    *fakeUserRepository
	svc      AuthService
}

func newTestEnv() *testEnv {
	otps := newFakeOTPService()
	bindings := newFakeBindingRepository()
	users := newFakeUserRepository()
	maker := token.NewMaker("test-secret", 5*time.Minute, time.Hour)
	return &testEnv{
		otps:     otps,
		bindings: bindings,
		users:    users,
		svc:      NewAuthService(otps, bindings, users, maker, otpmodels.DefaultTTL),
	}
}

func (e *testEnv) seedUser(t *testing.T, phone string, active bool) *usermodels.User {
	t.Helper()
	hash, err := password.Hash("secret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	status := usermodels.AccountActive
	if !active {
		status = usermodels.AccountSuspended
	}
	user := &usermodels.User{
		ID:           uuid.New(),
		Username:     "user-" + phone,
		Email:        phone + "@example.com",
		Phone:        phone,
		PasswordHash: hash,
		UserType:     usermodels.UserTypeServiceRecipient,
		Status:       status,
		IsActive:     active,
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:     "newcomer",
		Email:        "newcomer@example.com",
		Phone:        "09123456789",
		Password:     "strongpass1",
		PasswordConf: "strongpass1",
		FullName:     "New Comer",
		UserType:     "SC",
	}
}

func TestRegistrationRoundTrip(t *testing.T) {
	env := newTestEnv()

	issued, err := env.svc.StartRegistration(validRegisterRequest())
	if err != nil {
		t.Fatalf("StartRegistration() error = %v", err)
	}

	// Wrong code first
	if _, _, err := env.svc.CompleteRegistration(issued.Token, "654321"); !errors.Is(err, otpservice.ErrInvalidCode) {
		t.Errorf("CompleteRegistration(wrong code) error = %v, want ErrInvalidCode", err)
	}

	// Correct code materializes the account
	user, tokens, err := env.svc.CompleteRegistration(issued.Token, "123456")
	if err != nil {
		t.Fatalf("CompleteRegistration() error = %v", err)
	}
	if user.Phone != "09123456789" {
		t.Errorf("created user phone = %q, want %q", user.Phone, "09123456789")
	}
	if user.IDCardInfo == nil || user.IDCardInfo.Status != usermodels.IDCardPending {
		t.Error("created user should carry an empty pending id-card record")
	}
	if tokens == nil || tokens.Access == "" || tokens.Refresh == "" {
		t.Error("expected a session token pair for the new account")
	}

	// The OTP and its binding are gone; replay 404s
	if _, _, err := env.svc.CompleteRegistration(issued.Token, "123456"); !errors.Is(err, otpservice.ErrOTPNotFound) {
		t.Errorf("replayed CompleteRegistration() error = %v, want ErrOTPNotFound", err)
	}
}

func TestStartRegistrationValidation(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "09111111111", true)

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{"password too short", func(r *models.RegisterRequest) { r.Password, r.PasswordConf = "short", "short" }, password.ErrPolicyViolation},
		{"password too long", func(r *models.RegisterRequest) { r.Password, r.PasswordConf = "0123456789abcdefg", "0123456789abcdefg" }, password.ErrPolicyViolation},
		{"confirmation mismatch", func(r *models.RegisterRequest) { r.PasswordConf = "different1234" }, ErrPasswordMismatch},
		{"password equals username", func(r *models.RegisterRequest) { r.Username = "strongpass1" }, ErrPasswordIsUsername},
		{"unknown role", func(r *models.RegisterRequest) { r.UserType = "XX" }, ErrInvalidUserType},
		{"username taken", func(r *models.RegisterRequest) { r.Username = "user-09111111111" }, ErrUsernameTaken},
		{"email taken", func(r *models.RegisterRequest) { r.Email = "09111111111@example.com" }, ErrEmailTaken},
		{"phone taken", func(r *models.RegisterRequest) { r.Phone = "09111111111" }, ErrPhoneTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)
			if _, err := env.svc.StartRegistration(req); !errors.Is(err, tt.wantErr) {
				t.Errorf("StartRegistration() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpiredRegistrationIsCleanedUp(t *testing.T) {
	env := newTestEnv()

	issued, err := env.svc.StartRegistration(validRegisterRequest())
	if err != nil {
		t.Fatalf("StartRegistration() error = %v", err)
	}

	// Simulate time passing beyond the TTL
	env.otps.now = func() time.Time { return time.Now().Add(3 * time.Minute) }

	if _, _, err := env.svc.CompleteRegistration(issued.Token, "123456"); !errors.Is(err, otpservice.ErrInactive) {
		t.Fatalf("CompleteRegistration(expired) error = %v, want ErrInactive", err)
	}

	// Stale OTP and binding were removed
	if len(env.otps.records) != 0 {
		t.Error("stale otp record should be deleted")
	}
	if len(env.bindings.registrations) != 0 {
		t.Error("stale registration binding should be deleted")
	}
}

func TestStartLoginUnknownPhone(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.StartLogin("00000000000"); !errors.Is(err, ErrUnknownPhone) {
		t.Errorf("StartLogin(unknown) error = %v, want ErrUnknownPhone", err)
	}
	if len(env.otps.records) != 0 {
		t.Error("no otp record should be created for an unknown phone")
	}
}

func TestLoginRoundTrip(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "09123456789", true)

	issued, err := env.svc.StartLogin("09123456789")
	if err != nil {
		t.Fatalf("StartLogin() error = %v", err)
	}

	tokens, err := env.svc.CompleteLogin(issued.Token, "123456")
	if err != nil {
		t.Fatalf("CompleteLogin() error = %v", err)
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		t.Error("expected access and refresh tokens")
	}

	// One-time consumption: the token is gone afterwards
	if _, err := env.svc.CompleteLogin(issued.Token, "123456"); !errors.Is(err, otpservice.ErrOTPNotFound) {
		t.Errorf("replayed CompleteLogin() error = %v, want ErrOTPNotFound", err)
	}
}

func TestCompleteLoginSuspendedAccount(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "09123456789", false)

	issued, err := env.svc.StartLogin("09123456789")
	if err != nil {
		t.Fatalf("StartLogin() error = %v", err)
	}

	if _, err := env.svc.CompleteLogin(issued.Token, "123456"); !errors.Is(err, ErrInactiveAccount) {
		t.Errorf("CompleteLogin(suspended) error = %v, want ErrInactiveAccount", err)
	}
}

func TestPasswordLogin(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "09123456789", true)

	if _, err := env.svc.PasswordLogin("09123456789", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("PasswordLogin(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := env.svc.PasswordLogin("00000000000", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("PasswordLogin(unknown phone) error = %v, want ErrInvalidCredentials", err)
	}

	tokens, err := env.svc.PasswordLogin("09123456789", "secret-pass")
	if err != nil {
		t.Fatalf("PasswordLogin() error = %v", err)
	}
	if tokens.Access == "" {
		t.Error("expected an access token")
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser(t, "09123456789", true)

	issued, err := env.svc.StartPasswordReset("09123456789")
	if err != nil {
		t.Fatalf("StartPasswordReset() error = %v", err)
	}

	req := models.ResetPasswordRequest{Code: "123456", Password: "brand-new-pw", PasswordConf: "brand-new-pw"}
	if err := env.svc.CompletePasswordReset(issued.Token, req); err != nil {
		t.Fatalf("CompletePasswordReset() error = %v", err)
	}

	// Credential was overwritten and hashed
	updated, err := env.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !password.Verify("brand-new-pw", updated.PasswordHash) {
		t.Error("new password should verify against the stored hash")
	}
	if password.Verify("secret-pass", updated.PasswordHash) {
		t.Error("old password should no longer verify")
	}

	// OTP and binding deleted
	if len(env.otps.records) != 0 || len(env.bindings.resets) != 0 {
		t.Error("otp and reset binding should be deleted after a successful reset")
	}
}

func TestCompletePasswordResetMismatch(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "09123456789", true)

	issued, err := env.svc.StartPasswordReset("09123456789")
	if err != nil {
		t.Fatalf("StartPasswordReset() error = %v", err)
	}

	req := models.ResetPasswordRequest{Code: "123456", Password: "brand-new-pw", PasswordConf: "other-new-pw"}
	if err := env.svc.CompletePasswordReset(issued.Token, req); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CompletePasswordReset(mismatch) error = %v, want ErrPasswordMismatch", err)
	}
}
