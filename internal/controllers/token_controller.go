package controllers

import (
	"leadsdesk/internal/models"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"net/http"
	"time"
)

type TokenController struct {
	service services.TokenServiceInterface
	logger  providers.Logger
	now     func() time.Time
}

type tokenStatusRequest struct {
	Tokens []models.Token `json:"tokens"`
}

type tokenStatusResponse struct {
	Tokens   []models.TokenStatus `json:"tokens"`
	AlertDue bool                `json:"alert_due"`
}

func NewTokenController(service services.TokenServiceInterface, logger providers.Logger) *TokenController {
	return &TokenController{service: service, logger: logger, now: time.Now}
}

func (tc *TokenController) Status(w http.ResponseWriter, r *http.Request) {
	var req tokenStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	now := tc.now()
	statuses := make([]models.TokenStatus, 0, len(req.Tokens))
	for _, t := range req.Tokens {
		statuses = append(statuses, tc.service.Evaluate(t, now))
	}
	writeJSON(w, http.StatusOK, tokenStatusResponse{
		Tokens:   statuses,
		AlertDue: tc.service.AlertDue(req.Tokens, now),
	})
}

// AckAlert records that the operator has seen the expired-token alert.
func (tc *TokenController) AckAlert(w http.ResponseWriter, r *http.Request) {
	if err := tc.service.AckAlert(tc.now()); err != nil {
		tc.logger.Errorf(providers.TypePost, "Token alert acknowledgement failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
