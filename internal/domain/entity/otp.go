package entity

import "time"

// OTPChallenge is an issued one-time code, stored hashed.
type OTPChallenge struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the challenge is no longer valid at now
func (c *OTPChallenge) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
