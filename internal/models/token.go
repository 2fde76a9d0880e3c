package models

import "time"

// Token is the OAuth token record reported by the backend for one business.
type Token struct {
	BusinessID string     `json:"business_id"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type TokenStatus struct {
	BusinessID       string `json:"business_id"`
	ExpiresKnown     bool   `json:"expires_known"`
	Expired          bool   `json:"expired"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Remaining        string `json:"remaining"`
	RefreshExpired   bool   `json:"refresh_expired"`
}
