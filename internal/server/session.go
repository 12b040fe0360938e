package server

import "github.com/google/uuid"

// GeneratePlayerID creates a unique player ID for a phone to keep across
// reconnects.
func GeneratePlayerID() string {
	return uuid.NewString()
}
