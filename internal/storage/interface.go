package storage

import (
	"context"

	"github.com/mcoot/activities-client/internal/model"
)

// Fixed keys under which the credential pair is persisted
const (
	KeyToken       = "authToken"
	KeyDisplayName = "authUsername"
)

// CredentialStore persists the current session's credentials across
// restarts. Implementations only ever overwrite or clear the whole pair.
type CredentialStore interface {
	// Load returns the stored credentials. A missing or partial pair is
	// returned as zero Credentials with a nil error.
	Load(ctx context.Context) (model.Credentials, error)

	// Save replaces both stored values
	Save(ctx context.Context, creds model.Credentials) error

	// Clear removes both stored values
	Clear(ctx context.Context) error

	// Close releases any underlying connection
	Close() error
}
