//go:build integration

package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"consentd/internal/consent/models"
	"consentd/internal/integration"
	"consentd/internal/reporter"
	"consentd/internal/settings"
	"consentd/internal/userconfig"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/testutil/containers"
)

// collectorRecorder captures everything the reporter delivers.
type collectorRecorder struct {
	mu      sync.Mutex
	reports []collectorReport
}

type collectorReport struct {
	State       string `json:"state"`
	Credentials *struct {
		AccessKey       string `json:"access_key"`
		SecretAccessKey string `json:"secret_access_key"`
	} `json:"credentials"`
}

func (c *collectorRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report collectorReport
		if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		c.reports = append(c.reports, report)
		c.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *collectorRecorder) all() []collectorReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]collectorReport, len(c.reports))
	copy(out, c.reports)
	return out
}

func TestConsentLifecycle_Integration(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, pg.TruncateAll(ctx))

	collector := &collectorRecorder{}
	server := httptest.NewServer(collector.handler())
	defer server.Close()

	settingsStore := settings.NewPostgres(pg.DB)
	integrationStore := integration.NewPostgres(pg.DB)
	userStore := userconfig.NewPostgres(pg.DB)

	svc := NewService(
		settingsStore,
		integrationStore,
		userStore,
		reporter.New(server.URL),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	actor := id.UserID(uuid.New())

	// Fresh system: no state recorded.
	has, err := svc.HasConsentState(ctx)
	require.NoError(t, err)
	require.False(t, has)

	acceptedAt, err := svc.LastConsentIsAcceptedDate(ctx)
	require.NoError(t, err)
	require.Nil(t, acceptedAt)

	// not_set -> requested
	require.NoError(t, svc.RequestConsent(ctx, actor))
	err = svc.RequestConsent(ctx, actor)
	require.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyRequested))

	// requested -> accepted provisions a credential.
	require.NoError(t, svc.AcceptConsent(ctx, actor))

	accepted, err := svc.IsConsentAccepted(ctx)
	require.NoError(t, err)
	require.True(t, accepted)

	rawID, err := settingsStore.GetString(ctx, settings.KeyIntegrationID)
	require.NoError(t, err)
	integrationID, err := id.ParseIntegrationID(rawID)
	require.NoError(t, err)

	credential, err := integrationStore.FindByID(ctx, integrationID)
	require.NoError(t, err)
	require.NotEmpty(t, credential.AccessKey)
	require.NotEmpty(t, credential.SecretHash)

	// accepted -> revoked deletes the credential and clears the id.
	require.NoError(t, svc.RevokeConsent(ctx, actor))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StateRevoked, state)

	_, err = integrationStore.FindByID(ctx, integrationID)
	require.Error(t, err)

	cleared, err := settingsStore.GetString(ctx, settings.KeyIntegrationID)
	require.NoError(t, err)
	require.Empty(t, cleared)

	// Revoked state keeps its last-updated timestamp.
	revokedAt, err := svc.LastConsentIsAcceptedDate(ctx)
	require.NoError(t, err)
	require.NotNil(t, revokedAt)
	require.WithinDuration(t, time.Now(), *revokedAt, time.Minute)

	// Every transition reported exactly once, credentials only on accept.
	reports := collector.all()
	require.Len(t, reports, 3)
	require.Equal(t, "requested", reports[0].State)
	require.Nil(t, reports[0].Credentials)
	require.Equal(t, "accepted", reports[1].State)
	require.NotNil(t, reports[1].Credentials)
	require.Equal(t, credential.AccessKey, reports[1].Credentials.AccessKey)
	require.NotEmpty(t, reports[1].Credentials.SecretAccessKey)
	require.Equal(t, "revoked", reports[2].State)
	require.Nil(t, reports[2].Credentials)

	// Banner preference round trip.
	hidden, err := svc.HasUserHiddenConsentBanner(ctx, actor)
	require.NoError(t, err)
	require.False(t, hidden)

	require.NoError(t, svc.HideConsentBanner(ctx, actor))
	hidden, err = svc.HasUserHiddenConsentBanner(ctx, actor)
	require.NoError(t, err)
	require.True(t, hidden)
}

func TestConsentLifecycle_CollectorDownDoesNotBlock(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, pg.TruncateAll(ctx))

	// Collector that is never reachable.
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead.Close()

	svc := NewService(
		settings.NewPostgres(pg.DB),
		integration.NewPostgres(pg.DB),
		userconfig.NewPostgres(pg.DB),
		reporter.New(dead.URL),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	actor := id.UserID(uuid.New())

	require.NoError(t, svc.RequestConsent(ctx, actor))
	require.NoError(t, svc.AcceptConsent(ctx, actor))
	require.NoError(t, svc.RevokeConsent(ctx, actor))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StateRevoked, state)
}
