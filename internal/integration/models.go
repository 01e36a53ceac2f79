// Package integration persists the access credentials that authenticate
// usage-data uploads to the external collector.
package integration

import (
	"time"

	id "consentd/pkg/domain"
)

// AccessCredential is the stored form of an integration credential. The
// secret access key is persisted only as a bcrypt hash; the plaintext pair
// exists transiently in a CredentialPair at generation time.
type AccessCredential struct {
	ID         id.IntegrationID
	Label      string
	AccessKey  string
	SecretHash string
	CreatedAt  time.Time
}

// CredentialPair is the plaintext (accessKey, secretAccessKey) pair handed to
// the collector exactly once, when consent is accepted.
type CredentialPair struct {
	AccessKey       string
	SecretAccessKey string
}
