package integration

import (
	"context"

	id "consentd/pkg/domain"
)

// Store is the credential repository contract.
//
// Error contract:
// - FindByID returns sentinel.ErrNotFound when no record exists
// - DeleteByID returns sentinel.ErrNotFound when the id matches nothing
// - Create returns sentinel.ErrConflict on duplicate id or access key
type Store interface {
	Create(ctx context.Context, credential *AccessCredential) error
	FindByID(ctx context.Context, integrationID id.IntegrationID) (*AccessCredential, error)
	DeleteByID(ctx context.Context, integrationID id.IntegrationID) error
}
