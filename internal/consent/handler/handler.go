// Package handler exposes the consent lifecycle over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentd/internal/consent/models"
	"consentd/internal/platform/middleware"
	"consentd/internal/transport/http/shared"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the interface for consent operations.
type Service interface {
	RequestConsent(ctx context.Context, actor id.UserID) error
	AcceptConsent(ctx context.Context, actor id.UserID) error
	RevokeConsent(ctx context.Context, actor id.UserID) error
	State(ctx context.Context) (models.State, error)
	LastConsentIsAcceptedDate(ctx context.Context) (*time.Time, error)
	ShouldPushData(ctx context.Context) (bool, error)
	HasUserHiddenConsentBanner(ctx context.Context, userID id.UserID) (bool, error)
	HideConsentBanner(ctx context.Context, userID id.UserID) error
}

// Handler handles usage-data consent endpoints.
type Handler struct {
	logger  *slog.Logger
	consent Service
}

// New creates a new consent Handler.
func New(consent Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		consent: consent,
	}
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/usage-data", func(r chi.Router) {
		r.Get("/consent", h.handleGetConsent)
		r.Post("/consent/request", h.handleRequestConsent)
		r.Post("/consent/accept", h.handleAcceptConsent)
		r.Post("/consent/revoke", h.handleRevokeConsent)
		r.Get("/consent/banner", h.handleGetBanner)
		r.Post("/consent/banner/hide", h.handleHideBanner)
	})
}

func (h *Handler) handleRequestConsent(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "request consent", h.consent.RequestConsent)
}

func (h *Handler) handleAcceptConsent(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "accept consent", h.consent.AcceptConsent)
}

func (h *Handler) handleRevokeConsent(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "revoke consent", h.consent.RevokeConsent)
}

// handleTransition is the shared shape of the three transition endpoints:
// resolve the actor, run the guarded transition, answer 204 or a mapped error.
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, action string, transition func(context.Context, id.UserID) error) {
	ctx := r.Context()
	actor, ok := h.actorFromContext(ctx, w)
	if !ok {
		return
	}

	if err := transition(ctx, actor); err != nil {
		h.logger.WarnContext(ctx, "failed to "+action,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.consent.State(ctx)
	if err != nil {
		h.writeError(ctx, w, "read consent state", err)
		return
	}
	acceptedAt, err := h.consent.LastConsentIsAcceptedDate(ctx)
	if err != nil {
		h.writeError(ctx, w, "read consent date", err)
		return
	}
	pushEnabled, err := h.consent.ShouldPushData(ctx)
	if err != nil {
		h.writeError(ctx, w, "read push flag", err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, consentResponse{
		State:       state.String(),
		AcceptedAt:  acceptedAt,
		PushEnabled: pushEnabled,
	})
}

func (h *Handler) handleGetBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actorFromContext(ctx, w)
	if !ok {
		return
	}

	hidden, err := h.consent.HasUserHiddenConsentBanner(ctx, actor)
	if err != nil {
		h.writeError(ctx, w, "read banner preference", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, bannerResponse{Hidden: hidden})
}

func (h *Handler) handleHideBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actorFromContext(ctx, w)
	if !ok {
		return
	}

	if err := h.consent.HideConsentBanner(ctx, actor); err != nil {
		h.writeError(ctx, w, "hide banner", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// actorFromContext resolves the authenticated user set by RequireAuth. A
// missing or malformed id here means the middleware chain is broken.
func (h *Handler) actorFromContext(ctx context.Context, w http.ResponseWriter) (id.UserID, bool) {
	raw := middleware.GetUserID(ctx)
	if raw == "" {
		h.logger.ErrorContext(ctx, "userID missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.UserID{}, false
	}
	actor, err := id.ParseUserID(raw)
	if err != nil {
		h.logger.ErrorContext(ctx, "userID in context is not a valid uuid",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.UserID{}, false
	}
	return actor, true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	h.logger.ErrorContext(ctx, "failed to "+action,
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	)
	shared.WriteError(w, err)
}
