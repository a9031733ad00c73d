package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a compact uuid suitable for object names.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSecretToken returns a 32-byte random hex token. Used for the
// one-click mark-read links embedded in notification emails.
func NewSecretToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to uuid
		return NewID()
	}
	return hex.EncodeToString(b)
}
