package services

import (
	"leadsdesk/internal/hours"
	"leadsdesk/internal/models"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/structures"
	"leadsdesk/internal/unread"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// AlertSlot records when the expired-token alert was last acknowledged,
// as epoch milliseconds.
const AlertSlot = "tokenAlertTime"

type TokenServiceInterface interface {
	Evaluate(token models.Token, now time.Time) models.TokenStatus
	AlertDue(tokens []models.Token, now time.Time) bool
	AckAlert(now time.Time) error
}

type TokenService struct {
	store         unread.Store
	logger        providers.Logger
	refreshTTL    time.Duration
	alertCooldown time.Duration
}

func NewTokenService(conf *structures.Config, store SlotServiceInterface, logger providers.Logger) TokenServiceInterface {
	return &TokenService{
		store:         store,
		logger:        logger,
		refreshTTL:    conf.Tokens.RefreshTTL,
		alertCooldown: conf.Tokens.AlertCooldown,
	}
}

func (ts *TokenService) Evaluate(token models.Token, now time.Time) models.TokenStatus {
	status := models.TokenStatus{
		BusinessID:     token.BusinessID,
		Remaining:      hours.FormatCompact(0),
		RefreshExpired: ts.refreshExpired(token, now),
	}
	if token.ExpiresAt == nil {
		return status
	}

	remaining := int64(token.ExpiresAt.Sub(now) / time.Second)
	status.ExpiresKnown = true
	status.Expired = remaining <= 0
	status.RemainingSeconds = max(0, remaining)
	status.Remaining = hours.FormatCompact(status.RemainingSeconds)
	return status
}

// refreshExpired reports whether the refresh token issued at the last update
// has outlived its TTL. Tokens never updated are not considered expired.
func (ts *TokenService) refreshExpired(token models.Token, now time.Time) bool {
	if token.UpdatedAt == nil {
		return false
	}
	return !now.Before(token.UpdatedAt.Add(ts.refreshTTL))
}

// AlertDue reports whether the operator should be warned about expired
// refresh tokens: at least one expired and the last acknowledgement is
// missing, unreadable or older than the cooldown.
func (ts *TokenService) AlertDue(tokens []models.Token, now time.Time) bool {
	expired := false
	for _, t := range tokens {
		if ts.refreshExpired(t, now) {
			expired = true
			break
		}
	}
	if !expired {
		return false
	}

	last, ok := ts.lastAlert()
	if !ok {
		return true
	}
	return now.Sub(last) > ts.alertCooldown
}

func (ts *TokenService) AckAlert(now time.Time) error {
	raw, err := json.Marshal(strconv.FormatInt(now.UnixMilli(), 10))
	if err != nil {
		return err
	}
	ts.store.Set(AlertSlot, raw)
	return nil
}

func (ts *TokenService) lastAlert() (time.Time, bool) {
	raw, ok := ts.store.Get(AlertSlot)
	if !ok {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		ts.logger.Warnf(providers.TypeApp, "Unreadable %s value, treating as unset", AlertSlot)
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
