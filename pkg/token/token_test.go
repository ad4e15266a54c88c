package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndVerifyPair(t *testing.T) {
	maker := NewMaker("test-secret", 5*time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := maker.GeneratePair(userID, "OW")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	claims, err := maker.Verify(pair.Access, TypeAccess)
	if err != nil {
		t.Fatalf("Verify(access) error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("access claims user id = %v, want %v", claims.UserID, userID)
	}
	if claims.UserType != "OW" {
		t.Errorf("access claims user type = %q, want %q", claims.UserType, "OW")
	}

	if _, err := maker.Verify(pair.Refresh, TypeRefresh); err != nil {
		t.Errorf("Verify(refresh) error = %v", err)
	}
}

func TestVerifyRejectsWrongType(t *testing.T) {
	maker := NewMaker("test-secret", 5*time.Minute, time.Hour)

	pair, err := maker.GeneratePair(uuid.New(), "SC")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	if _, err := maker.Verify(pair.Refresh, TypeAccess); !errors.Is(err, ErrWrongType) {
		t.Errorf("Verify(refresh as access) error = %v, want ErrWrongType", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute, time.Hour)

	pair, err := maker.GeneratePair(uuid.New(), "SC")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	if _, err := maker.Verify(pair.Access, TypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	maker := NewMaker("test-secret", 5*time.Minute, time.Hour)
	other := NewMaker("other-secret", 5*time.Minute, time.Hour)

	pair, err := maker.GeneratePair(uuid.New(), "AD")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}

	if _, err := other.Verify(pair.Access, TypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(foreign secret) error = %v, want ErrInvalidToken", err)
	}
}
