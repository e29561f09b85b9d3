// Package identity classifies user ids into the storage kind that owns their data.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Kind names the backing store a user's data lives in.
type Kind string

const (
	KindCloud Kind = "cloud"
	KindLocal Kind = "local"
	KindGuest Kind = "guest"
)

const (
	GuestPrefix = "guest_"
	LocalPrefix = "local_"
)

// User is an authenticated (or guest) session identity.
type User struct {
	ID   string
	Kind Kind
}

// Resolver maps a user id to its storage kind. Implementations must not do I/O.
type Resolver interface {
	Classify(userID string) Kind
}

// PrefixResolver classifies ids by their prefix: guest_ and local_ ids stay on
// the device, everything else is a cloud account.
type PrefixResolver struct{}

// Classify implements Resolver.
func (PrefixResolver) Classify(userID string) Kind {
	return Classify(userID)
}

// Classify is the package-level form of PrefixResolver.Classify.
func Classify(userID string) Kind {
	id := strings.TrimSpace(userID)
	switch {
	case strings.HasPrefix(id, GuestPrefix):
		return KindGuest
	case strings.HasPrefix(id, LocalPrefix):
		return KindLocal
	default:
		return KindCloud
	}
}

// NewUser builds a User with its kind resolved.
func NewUser(id string) *User {
	return &User{ID: id, Kind: Classify(id)}
}

// NewGuestID mints an id for an unauthenticated session.
func NewGuestID() string {
	return GuestPrefix + uuid.NewString()
}

// NewLocalID mints an id for a device-only account.
func NewLocalID() string {
	return LocalPrefix + uuid.NewString()
}
