package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// DefaultOTPWindow is how long a recovery code stays valid.
const DefaultOTPWindow = 10 * time.Minute

// OTPGenerator issues six-digit recovery codes from crypto/rand.
type OTPGenerator struct {
	window time.Duration
}

// NewOTPGenerator returns a generator with the given validity window.
func NewOTPGenerator(window time.Duration) *OTPGenerator {
	if window <= 0 {
		window = DefaultOTPWindow
	}
	return &OTPGenerator{window: window}
}

// Generate returns a code drawn uniformly from [100000, 999999].
func (g *OTPGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// ExpiryFrom returns the expiry timestamp for a code generated at now.
func (g *OTPGenerator) ExpiryFrom(now time.Time) time.Time {
	return now.Add(g.window)
}
