package services

import (
	"leadsdesk/internal/models"
	"leadsdesk/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(store SlotServiceInterface) (*TokenService, *testutil.MockLogger) {
	conf := testConfig()
	conf.Tokens.RefreshTTL = 365 * 24 * time.Hour
	conf.Tokens.AlertCooldown = 5 * time.Hour
	logger := &testutil.MockLogger{}
	return NewTokenService(conf, store, logger).(*TokenService), logger
}

func ptr(t time.Time) *time.Time { return &t }

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestTokenService_EvaluateRemaining(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	status := ts.Evaluate(models.Token{
		BusinessID: "biz",
		ExpiresAt:  ptr(now.Add(26*time.Hour + 5*time.Second)),
		UpdatedAt:  ptr(now.Add(-time.Hour)),
	}, now)

	assert.True(t, status.ExpiresKnown)
	assert.False(t, status.Expired)
	assert.Equal(t, int64(93605), status.RemainingSeconds)
	assert.Equal(t, "1d 2h 5s", status.Remaining)
	assert.False(t, status.RefreshExpired)
}

func TestTokenService_EvaluateExpiredClampsToZero(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	status := ts.Evaluate(models.Token{ExpiresAt: ptr(now.Add(-time.Minute))}, now)

	assert.True(t, status.Expired)
	assert.Equal(t, int64(0), status.RemainingSeconds)
	assert.Equal(t, "0s", status.Remaining)
}

func TestTokenService_EvaluateUnknownExpiry(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	status := ts.Evaluate(models.Token{BusinessID: "biz"}, now)

	assert.False(t, status.ExpiresKnown)
	assert.False(t, status.Expired)
}

func TestTokenService_RefreshExpiredAfterTTL(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	updated := now.Add(-365 * 24 * time.Hour)

	assert.True(t, ts.Evaluate(models.Token{UpdatedAt: ptr(updated)}, now).RefreshExpired)
	assert.False(t, ts.Evaluate(models.Token{UpdatedAt: ptr(updated.Add(time.Second))}, now).RefreshExpired)
}

func TestTokenService_AlertDueWhenNeverAcknowledged(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	tokens := []models.Token{{UpdatedAt: ptr(now.AddDate(-2, 0, 0))}}
	assert.True(t, ts.AlertDue(tokens, now))
}

func TestTokenService_NoAlertWithoutExpiredTokens(t *testing.T) {
	ts, _ := newTokenService(newSlotService())
	tokens := []models.Token{{UpdatedAt: ptr(now.Add(-time.Hour))}, {}}
	assert.False(t, ts.AlertDue(tokens, now))
}

func TestTokenService_AckSilencesForCooldown(t *testing.T) {
	store := newSlotService()
	ts, _ := newTokenService(store)
	tokens := []models.Token{{UpdatedAt: ptr(now.AddDate(-2, 0, 0))}}

	require.NoError(t, ts.AckAlert(now))
	raw, ok := store.Get(AlertSlot)
	require.True(t, ok)
	assert.JSONEq(t, `"1741608000000"`, string(raw))

	assert.False(t, ts.AlertDue(tokens, now.Add(5*time.Hour)))
	assert.True(t, ts.AlertDue(tokens, now.Add(5*time.Hour+time.Millisecond)))
}

func TestTokenService_AcceptsBareNumberSlot(t *testing.T) {
	store := newSlotService()
	ts, _ := newTokenService(store)
	store.Set(AlertSlot, []byte("1741608000000"))

	tokens := []models.Token{{UpdatedAt: ptr(now.AddDate(-2, 0, 0))}}
	assert.False(t, ts.AlertDue(tokens, now.Add(time.Hour)))
}

func TestTokenService_CorruptSlotTreatedAsUnset(t *testing.T) {
	store := newSlotService()
	ts, logger := newTokenService(store)
	store.Set(AlertSlot, []byte(`"yesterday"`))

	tokens := []models.Token{{UpdatedAt: ptr(now.AddDate(-2, 0, 0))}}
	assert.True(t, ts.AlertDue(tokens, now))
	assert.Equal(t, 1, logger.Count("warn"))
}
