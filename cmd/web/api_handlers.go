package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/contact"
	"finitefield.org/studio-web/internal/httpx"
	mw "finitefield.org/studio-web/internal/middleware"
	"finitefield.org/studio-web/internal/observability"
)

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type portfolioResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// submitContact accepts the inquiry form as multipart or urlencoded data.
func (a *app) submitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	sub, err := contact.ParseSubmission(w, r, a.cfg.Contact.MaxUpload)
	switch {
	case errors.Is(err, contact.ErrTooLarge):
		httpx.WriteError(ctx, w, http.StatusRequestEntityTooLarge, a.t(r, "contact.error.too_large"))
		return
	case err != nil:
		logger.Warn("parse inquiry", zap.Error(err))
		httpx.WriteError(ctx, w, http.StatusBadRequest, a.t(r, "contact.error.invalid"))
		return
	}

	receipt, err := a.contact.Submit(ctx, sub)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(ctx, w, http.StatusBadRequest, a.validationMessage(r, sub, verr))
		return
	case err != nil:
		logger.Error("send inquiry", zap.Error(err))
		httpx.WriteError(ctx, w, http.StatusInternalServerError, a.t(r, "contact.error.send"))
		return
	}

	logger.Info("inquiry accepted", zap.String("message_id", receipt.MessageID), zap.String("project_type", sub.ProjectType))
	message := a.bundle.T(mw.Lang(r), "contact.success")
	if message == "contact.success" {
		message = receipt.Message
	}
	httpx.WriteJSON(w, http.StatusOK, contactResponse{Success: true, Message: message, MessageID: receipt.MessageID})
}

// validationMessage reports missing fields first; a malformed email is only
// mentioned once everything required is present.
func (a *app) validationMessage(r *http.Request, sub contact.Submission, verr *contact.ValidationError) string {
	for _, f := range []string{contact.FieldCompanyOrName, contact.FieldContact, contact.FieldProjectType} {
		if verr.Has(f) {
			return a.t(r, "contact.error.required")
		}
	}
	if verr.Has(contact.FieldEmail) && sub.Email == "" {
		return a.t(r, "contact.error.required")
	}
	return a.t(r, "contact.error.email")
}

// portfolioDownload returns the published portfolio file.
func (a *app) portfolioDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pd, err := a.cms.PortfolioDownload(ctx)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			observability.FromContext(ctx).Warn("portfolio download", zap.Error(err))
		}
		httpx.WriteError(ctx, w, http.StatusNotFound, a.t(r, "portfolio.not_found"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portfolioResponse{Title: pd.Title, URL: pd.URL})
}
