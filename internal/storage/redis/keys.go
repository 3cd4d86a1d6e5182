package redis

import (
	"fmt"

	"github.com/mcoot/activities-client/internal/storage"
)

// tokenKey returns the Redis key for the session token
func tokenKey(namespace string) string {
	return fmt.Sprintf("%s:%s", namespace, storage.KeyToken)
}

// displayNameKey returns the Redis key for the display name
func displayNameKey(namespace string) string {
	return fmt.Sprintf("%s:%s", namespace, storage.KeyDisplayName)
}
