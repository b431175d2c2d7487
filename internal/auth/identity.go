package auth

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/google/uuid"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	ID       uuid.UUID
	Username string
	Email    string
	Roles    []string
}

func IdentityFromUser(u *models.User) Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    append([]string(nil), u.Roles...),
	}
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i Identity) HasAnyRole(roles ...models.Role) bool {
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
