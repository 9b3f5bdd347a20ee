// Package domain defines the authenticated identity attached to requests.
package domain

import (
	"github.com/google/uuid"
)

// Identity is the authenticated user behind a request. Sessions are managed
// by an external collaborator; this service only needs a verified user ID to
// run its membership checks against.
type Identity struct {
	UserID uuid.UUID
}
