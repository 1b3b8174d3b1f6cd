// Package captcha verifies CAPTCHA proof tokens against an external
// verification service.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrVerificationFailed covers a rejected token and an unreachable
// verifier alike: both are treated as verification failure, not a retry
// case.
var ErrVerificationFailed = errors.New("captcha verification failed")

// Verifier checks a CAPTCHA proof token.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// Google verifies tokens against the reCAPTCHA siteverify endpoint.
type Google struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewGoogle(secret, verifyURL string) *Google {
	return &Google{
		secret:    secret,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (g *Google) Verify(ctx context.Context, token string) error {
	form := url.Values{}
	form.Set("secret", g.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: verifier unreachable: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: verifier returned status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrVerificationFailed, err)
	}
	if !vr.Success {
		return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(vr.ErrorCodes, ","))
	}
	return nil
}
