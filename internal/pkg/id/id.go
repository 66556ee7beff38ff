package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which keeps them ordered when appended to DynamoDB sort keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewRequestID returns a random (v4) UUID used to correlate one submission
// across logs, the outbound email and the API response.
func NewRequestID() string {
	return uuid.NewString()
}
