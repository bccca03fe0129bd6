package utils

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "device-1", "apple", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.DeviceID != "device-1" || claims.Provider != "apple" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ParseToken([]byte("other"), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "device-1", "guest", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := ParseToken(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	type form struct {
		Weight float64 `json:"weight" validate:"gt=0"`
		Gender string  `json:"gender" validate:"oneof=male female other"`
	}
	err := ValidateStruct(form{Weight: 0, Gender: "x"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Fields["weight"] != "gt=0" {
		t.Fatalf("expected weight gt=0, got %q", verr.Fields["weight"])
	}
	if verr.Fields["gender"] != "oneof=male female other" {
		t.Fatalf("unexpected gender rule %q", verr.Fields["gender"])
	}
	if err := ValidateStruct(form{Weight: 60, Gender: "female"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestNewIDPrefix(t *testing.T) {
	id := NewID("log")
	if len(id) != len("log-")+36 || id[:4] != "log-" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(165, 55)
	if err != nil {
		t.Fatalf("CalculateBMI() error = %v", err)
	}
	if bmi != 20.2 {
		t.Fatalf("expected 20.2, got %v", bmi)
	}
	if got := BMICategory(bmi); got != "Normal weight" {
		t.Fatalf("expected Normal weight, got %q", got)
	}
	if _, err := CalculateBMI(0, 55); err == nil {
		t.Fatalf("expected error for zero height")
	}
}
