// Package service implements the usage-data consent lifecycle: a guarded
// state machine over the system settings store, credential provisioning on
// acceptance, and best-effort reporting to the external collector.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"consentd/internal/audit"
	"consentd/internal/consent/metrics"
	"consentd/internal/consent/models"
	"consentd/internal/integration"
	"consentd/internal/settings"
	"consentd/internal/userconfig"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/secrets"
)

var tracer trace.Tracer = otel.Tracer("consentd/internal/consent/service")

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// SettingsStore is the scalar configuration store the lifecycle reads and
// writes its state through. Same contract as settings.Store.
type SettingsStore interface {
	GetString(ctx context.Context, key string) (string, error)
	GetBool(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	LastUpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// IntegrationStore persists upload credentials. Same contract as
// integration.Store.
type IntegrationStore interface {
	Create(ctx context.Context, credential *integration.AccessCredential) error
	DeleteByID(ctx context.Context, integrationID id.IntegrationID) error
}

// UserSettingsStore holds per-user preferences. Same contract as
// userconfig.Store.
type UserSettingsStore interface {
	GetBool(ctx context.Context, userID id.UserID, key string) (bool, error)
	SetBool(ctx context.Context, userID id.UserID, key string, value bool) error
}

// Reporter delivers state transitions to the external collector. Failures
// are swallowed by the service: the state mutation is authoritative.
type Reporter interface {
	Report(ctx context.Context, state string, pair *integration.CredentialPair) error
}

// Service orchestrates the consent lifecycle. It keeps orchestration out of
// handlers and domain logic thin.
type Service struct {
	settings     SettingsStore
	integrations IntegrationStore
	userSettings UserSettingsStore
	reporter     Reporter
	auditor      *audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
	clock        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditor sets the audit trail publisher.
func WithAuditor(auditor *audit.Publisher) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func NewService(
	settingsStore SettingsStore,
	integrations IntegrationStore,
	userSettings UserSettingsStore,
	reporter Reporter,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	svc := &Service{
		settings:     settingsStore,
		integrations: integrations,
		userSettings: userSettings,
		reporter:     reporter,
		logger:       logger,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// State returns the current consent state. An absent key means not_set.
func (s *Service) State(ctx context.Context) (models.State, error) {
	raw, err := s.settings.GetString(ctx, settings.KeyConsentState)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.StateNotSet, nil
		}
		return models.StateNotSet, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent state")
	}
	state, err := models.ParseState(raw)
	if err != nil {
		return models.StateNotSet, err
	}
	return state, nil
}

// RequestConsent moves the lifecycle from not_set to requested.
func (s *Service) RequestConsent(ctx context.Context, actor id.UserID) error {
	ctx, span := tracer.Start(ctx, "consent.request")
	defer span.End()
	defer s.observeTransitionLatency(time.Now())

	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	if err := state.CanRequest(); err != nil {
		s.incrementGuardViolations("request")
		return err
	}

	if err := s.settings.Set(ctx, settings.KeyConsentState, models.StateRequested.String()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist consent state")
	}

	s.report(ctx, models.StateRequested, nil)
	s.emitAudit(ctx, actor, audit.ActionConsentRequested, "")
	s.incrementTransitions(models.StateRequested)
	span.SetAttributes(attribute.String("consent.state", models.StateRequested.String()))
	return nil
}

// AcceptConsent moves the lifecycle to accepted, provisions a fresh upload
// credential and hands the plaintext pair to the collector exactly once.
func (s *Service) AcceptConsent(ctx context.Context, actor id.UserID) error {
	ctx, span := tracer.Start(ctx, "consent.accept")
	defer span.End()
	defer s.observeTransitionLatency(time.Now())

	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	if err := state.CanAccept(); err != nil {
		s.incrementGuardViolations("accept")
		return err
	}

	pair, integrationID, err := s.provisionCredential(ctx)
	if err != nil {
		return err
	}

	if err := s.settings.Set(ctx, settings.KeyIntegrationID, integrationID.String()); err != nil {
		s.discardCredential(ctx, integrationID)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist integration id")
	}
	if err := s.settings.Set(ctx, settings.KeyConsentState, models.StateAccepted.String()); err != nil {
		// The state value is authoritative; without it the credential and id
		// would be orphans. Best-effort rollback, then surface the failure.
		s.discardCredential(ctx, integrationID)
		if clearErr := s.settings.Set(ctx, settings.KeyIntegrationID, ""); clearErr != nil {
			s.logger.Warn("could not clear integration id after failed accept",
				"integration_id", integrationID.String(),
				"error", clearErr,
			)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist consent state")
	}

	s.report(ctx, models.StateAccepted, pair)
	s.emitAudit(ctx, actor, audit.ActionConsentAccepted, integrationID.String())
	s.incrementTransitions(models.StateAccepted)
	span.SetAttributes(
		attribute.String("consent.state", models.StateAccepted.String()),
		attribute.String("integration.id", integrationID.String()),
	)
	return nil
}

// RevokeConsent moves the lifecycle to revoked and retires the upload
// credential. A missing credential record is treated as already gone.
func (s *Service) RevokeConsent(ctx context.Context, actor id.UserID) error {
	ctx, span := tracer.Start(ctx, "consent.revoke")
	defer span.End()
	defer s.observeTransitionLatency(time.Now())

	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	if err := state.CanRevoke(); err != nil {
		s.incrementGuardViolations("revoke")
		return err
	}

	if err := s.retireCredential(ctx); err != nil {
		return err
	}

	if err := s.settings.Set(ctx, settings.KeyConsentState, models.StateRevoked.String()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist consent state")
	}

	s.report(ctx, models.StateRevoked, nil)
	s.emitAudit(ctx, actor, audit.ActionConsentRevoked, "")
	s.incrementTransitions(models.StateRevoked)
	span.SetAttributes(attribute.String("consent.state", models.StateRevoked.String()))
	return nil
}

// HasConsentState reports whether any consent decision was ever recorded.
func (s *Service) HasConsentState(ctx context.Context) (bool, error) {
	_, err := s.settings.GetString(ctx, settings.KeyConsentState)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent state")
	}
	return true, nil
}

// IsConsentAccepted reports whether the stored state is exactly accepted.
func (s *Service) IsConsentAccepted(ctx context.Context) (bool, error) {
	state, err := s.State(ctx)
	if err != nil {
		return false, err
	}
	return state == models.StateAccepted, nil
}

// ShouldPushData is the inverse of the push-disabled flag. It is independent
// of the consent state.
func (s *Service) ShouldPushData(ctx context.Context) (bool, error) {
	disabled, err := s.settings.GetBool(ctx, settings.KeyPushDisabled)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read push flag")
	}
	return !disabled, nil
}

// LastConsentIsAcceptedDate returns the current clock time while consent is
// accepted. For any other state it falls back to the last time the state key
// was written; nil when the key was never written.
func (s *Service) LastConsentIsAcceptedDate(ctx context.Context) (*time.Time, error) {
	state, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	if state == models.StateAccepted {
		now := s.clock()
		return &now, nil
	}

	updatedAt, err := s.settings.LastUpdatedAt(ctx, settings.KeyConsentState)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent timestamp")
	}
	return &updatedAt, nil
}

// HasUserHiddenConsentBanner reports whether the user dismissed the consent
// banner. Absent preference means not hidden.
func (s *Service) HasUserHiddenConsentBanner(ctx context.Context, userID id.UserID) (bool, error) {
	if userID.IsNil() {
		return false, dErrors.New(dErrors.CodeUnauthorized, "missing user context")
	}
	hidden, err := s.userSettings.GetBool(ctx, userID, userconfig.KeyHideConsentBanner)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read banner preference")
	}
	return hidden, nil
}

// HideConsentBanner records that the user dismissed the consent banner.
func (s *Service) HideConsentBanner(ctx context.Context, userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "missing user context")
	}
	if err := s.userSettings.SetBool(ctx, userID, userconfig.KeyHideConsentBanner, true); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist banner preference")
	}
	s.emitAudit(ctx, userID, audit.ActionBannerHidden, "")
	return nil
}

// provisionCredential generates a fresh credential pair, persists its hashed
// form and returns the plaintext pair for the one-time collector handoff.
func (s *Service) provisionCredential(ctx context.Context) (*integration.CredentialPair, id.IntegrationID, error) {
	accessKey, err := secrets.GenerateAccessKey()
	if err != nil {
		return nil, id.IntegrationID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access key")
	}
	secret, err := secrets.GenerateSecret()
	if err != nil {
		return nil, id.IntegrationID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate secret")
	}
	secretHash, err := secrets.Hash(secret)
	if err != nil {
		return nil, id.IntegrationID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash secret")
	}

	integrationID := id.NewIntegrationID()
	credential := &integration.AccessCredential{
		ID:         integrationID,
		Label:      "Usage Data Collector",
		AccessKey:  accessKey,
		SecretHash: secretHash,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.integrations.Create(ctx, credential); err != nil {
		return nil, id.IntegrationID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist credential")
	}

	return &integration.CredentialPair{
		AccessKey:       accessKey,
		SecretAccessKey: secret,
	}, integrationID, nil
}

// discardCredential removes a credential whose transition never committed.
func (s *Service) discardCredential(ctx context.Context, integrationID id.IntegrationID) {
	if err := s.integrations.DeleteByID(ctx, integrationID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.Warn("could not discard credential after failed accept",
			"integration_id", integrationID.String(),
			"error", err,
		)
	}
}

// retireCredential deletes the credential the integration id points at and
// clears the id. A credential that is already gone is not an error.
func (s *Service) retireCredential(ctx context.Context) error {
	raw, err := s.settings.GetString(ctx, settings.KeyIntegrationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read integration id")
	}
	if raw == "" {
		return nil
	}

	integrationID, err := id.ParseIntegrationID(raw)
	if err != nil {
		// A corrupt id cannot be deleted by key; log and clear it.
		s.logger.Warn("stored integration id is not a valid uuid", "integration_id", raw)
	} else if err := s.integrations.DeleteByID(ctx, integrationID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete credential")
	}

	if err := s.settings.Set(ctx, settings.KeyIntegrationID, ""); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear integration id")
	}
	return nil
}

// report delivers the transition to the collector. The mutation already
// committed; delivery failures are logged and counted, never surfaced.
func (s *Service) report(ctx context.Context, state models.State, pair *integration.CredentialPair) {
	if s.reporter == nil {
		return
	}
	if err := s.reporter.Report(ctx, state.String(), pair); err != nil {
		s.logger.Warn("consent report delivery failed",
			"state", state.String(),
			"error", err,
		)
		s.incrementReportFailures()
	}
}

func (s *Service) emitAudit(ctx context.Context, actor id.UserID, action, detail string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Timestamp: s.clock(),
		Action:    action,
		Detail:    detail,
	}
	if !actor.IsNil() {
		event.UserID = actor.String()
	}
	_ = s.auditor.Emit(ctx, event)
}

func (s *Service) incrementTransitions(state models.State) {
	if s.metrics != nil {
		s.metrics.IncrementTransitions(state.String())
	}
}

func (s *Service) incrementGuardViolations(operation string) {
	if s.metrics != nil {
		s.metrics.IncrementGuardViolations(operation)
	}
}

func (s *Service) incrementReportFailures() {
	if s.metrics != nil {
		s.metrics.IncrementReportFailures()
	}
}

func (s *Service) observeTransitionLatency(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveTransitionLatency(time.Since(start).Seconds())
	}
}
