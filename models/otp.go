package models

import "time"

type OTPRecord struct {
	ID        int64     `json:"id,omitempty"`
	Email     string    `json:"email"`
	Hash      string    `json:"hash"`
	IPAddress string    `json:"ip_address,omitempty"`
	Attempts  int       `json:"attempts"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValid reports whether the code can still be verified at now.
func (r OTPRecord) IsValid(now time.Time) bool {
	return !r.Used && now.Before(r.ExpiresAt)
}
