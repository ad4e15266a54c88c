package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"komakresan-backend/internal/apps/otp/models"

	"gorm.io/gorm"
)

// fakeOTPRepository is an in-memory OTPRepository with the same atomicity
// guarantees as the SQL implementation.
type fakeOTPRepository struct {
	mu      sync.Mutex
	records map[string]*models.OneTimePassword
}

func newFakeOTPRepository() *fakeOTPRepository {
	return &fakeOTPRepository{records: make(map[string]*models.OneTimePassword)}
}

func (f *fakeOTPRepository) Create(otp *models.OneTimePassword) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *otp
	f.records[otp.Token] = &copied
	return nil
}

func (f *fakeOTPRepository) FindByToken(token string) (*models.OneTimePassword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *otp
	return &copied, nil
}

func (f *fakeOTPRepository) MarkExpired(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp, ok := f.records[token]; ok && !otp.IsUsed {
		otp.Status = models.StatusExpired
	}
	return nil
}

func (f *fakeOTPRepository) ConsumeActive(token string, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.records[token]
	if !ok || otp.Status != models.StatusActive || otp.IsUsed || !otp.ExpiresAt.After(now) {
		return 0, nil
	}
	otp.Status = models.StatusUsed
	otp.IsUsed = true
	return 1, nil
}

func (f *fakeOTPRepository) Delete(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, token)
	return nil
}

func (f *fakeOTPRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, otp := range f.records {
		if otp.ExpiresAt.Before(cutoff) {
			delete(f.records, token)
			n++
		}
	}
	return n, nil
}

func newTestService(repo *fakeOTPRepository) *otpService {
	return &otpService{
		repo:     repo,
		provider: NewNoOpProvider(),
		now:      time.Now,
	}
}

func TestIssueReturnsActiveOTP(t *testing.T) {
	svc := newTestService(newFakeOTPRepository())

	otp, err := svc.Issue("09123456789", models.DefaultTTL)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(otp.Code) != 6 {
		t.Errorf("Issue() code length = %d, want 6", len(otp.Code))
	}
	if otp.Token == "" {
		t.Error("Issue() returned empty token")
	}

	status, err := svc.ResolveStatus(otp)
	if err != nil {
		t.Fatalf("ResolveStatus() error = %v", err)
	}
	if status != models.StatusActive {
		t.Errorf("ResolveStatus() = %v, want %v", status, models.StatusActive)
	}
}

func TestResolveStatus(t *testing.T) {
	base := time.Now()

	tests := []struct {
		name string
		otp  models.OneTimePassword
		now  time.Time
		want models.Status
	}{
		{
			name: "active before expiry",
			otp:  models.OneTimePassword{Token: "t1", Status: models.StatusActive, ExpiresAt: base.Add(time.Minute)},
			now:  base,
			want: models.StatusActive,
		},
		{
			name: "expired after ttl",
			otp:  models.OneTimePassword{Token: "t2", Status: models.StatusActive, ExpiresAt: base.Add(-time.Second)},
			now:  base,
			want: models.StatusExpired,
		},
		{
			name: "used wins over expired",
			otp:  models.OneTimePassword{Token: "t3", Status: models.StatusUsed, IsUsed: true, ExpiresAt: base.Add(-time.Hour)},
			now:  base,
			want: models.StatusUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOTPRepository()
			otp := tt.otp
			repo.Create(&otp)
			svc := newTestService(repo)
			svc.now = func() time.Time { return tt.now }

			got, err := svc.ResolveStatus(&otp)
			if err != nil {
				t.Fatalf("ResolveStatus() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRoundTrip(t *testing.T) {
	repo := newFakeOTPRepository()
	svc := newTestService(repo)

	otp, err := svc.Issue("09123456789", models.DefaultTTL)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Wrong code is rejected without consuming the record
	if _, err := svc.Validate(otp.Token, "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Validate(wrong code) error = %v, want ErrInvalidCode", err)
	}

	// Correct code succeeds exactly once
	consumed, err := svc.Validate(otp.Token, otp.Code)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !consumed.IsUsed || consumed.Status != models.StatusUsed {
		t.Errorf("Validate() record not consumed: status=%v is_used=%v", consumed.Status, consumed.IsUsed)
	}

	// Replaying the same token and code must fail
	if _, err := svc.Validate(otp.Token, otp.Code); !errors.Is(err, ErrInactive) {
		t.Errorf("second Validate() error = %v, want ErrInactive", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := newTestService(newFakeOTPRepository())
	if _, err := svc.Validate("missing", "123456"); !errors.Is(err, ErrOTPNotFound) {
		t.Errorf("Validate(unknown token) error = %v, want ErrOTPNotFound", err)
	}
}

func TestValidateExpired(t *testing.T) {
	repo := newFakeOTPRepository()
	svc := newTestService(repo)

	otp, err := svc.Issue("09123456789", models.DefaultTTL)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(3 * time.Minute) }

	if _, err := svc.Validate(otp.Token, otp.Code); !errors.Is(err, ErrInactive) {
		t.Errorf("Validate(expired) error = %v, want ErrInactive", err)
	}

	stored, err := repo.FindByToken(otp.Token)
	if err != nil {
		t.Fatalf("FindByToken() error = %v", err)
	}
	if stored.Status != models.StatusExpired {
		t.Errorf("expired record status = %v, want %v", stored.Status, models.StatusExpired)
	}
}

func TestValidateConcurrentConsumption(t *testing.T) {
	repo := newFakeOTPRepository()
	svc := newTestService(repo)

	otp, err := svc.Issue("09123456789", models.DefaultTTL)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Validate(otp.Token, otp.Code)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else if errors.Is(err, ErrInactive) {
			failures++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("concurrent Validate() successes = %d, want exactly 1", successes)
	}
	if failures != attempts-1 {
		t.Errorf("concurrent Validate() failures = %d, want %d", failures, attempts-1)
	}
}

func TestSweepExpired(t *testing.T) {
	repo := newFakeOTPRepository()
	svc := newTestService(repo)

	repo.Create(&models.OneTimePassword{Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)})
	repo.Create(&models.OneTimePassword{Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)})

	deleted, err := svc.SweepExpired(10 * time.Minute)
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("SweepExpired() deleted = %d, want 1", deleted)
	}
	if _, err := repo.FindByToken("fresh"); err != nil {
		t.Errorf("fresh record should survive sweep: %v", err)
	}
}
