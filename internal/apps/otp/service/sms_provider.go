package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// SMSProvider defines the interface for delivering OTP codes out-of-band
type SMSProvider interface {
	SendOTP(phone, code string) error
}

// noOpProvider skips delivery (for local environment)
type noOpProvider struct{}

func (n *noOpProvider) SendOTP(phone, code string) error {
	log.Info().Str("phone", phone).Str("code", code).Msg("[SMS NoOp] skipping delivery")
	return nil
}

// NewNoOpProvider creates a no-op SMS provider
func NewNoOpProvider() SMSProvider {
	return &noOpProvider{}
}

// authKeyProvider sends OTP codes via the AuthKey.io API
type authKeyProvider struct {
	authKey     string
	templateID  string
	countryCode string
}

func (a *authKeyProvider) SendOTP(phone, code string) error {
	baseURL := "https://api.authkey.io/request"
	params := url.Values{}
	params.Add("authkey", a.authKey)
	params.Add("mobile", phone)
	params.Add("country_code", a.countryCode)
	params.Add("sid", a.templateID)
	params.Add("otp", code)

	reqURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())
	resp, err := http.Get(reqURL)
	if err != nil {
		return fmt.Errorf("failed to send OTP via AuthKey: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("AuthKey API returned status %d: %s", resp.StatusCode, string(body))
	}

	log.Info().Str("phone", phone).Msg("[SMS AuthKey] OTP sent")
	return nil
}

// NewAuthKeyProvider creates an AuthKey.io SMS provider
func NewAuthKeyProvider(authKey, templateID, countryCode string) SMSProvider {
	return &authKeyProvider{
		authKey:     authKey,
		templateID:  templateID,
		countryCode: countryCode,
	}
}
