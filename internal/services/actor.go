package services

import "github.com/yukikurage/academic-hub-api/internal/models"

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	ID      uint64
	IsAdmin bool
}

// ActorFor builds the actor for an authenticated user.
func ActorFor(user *models.User) Actor {
	return Actor{ID: user.ID, IsAdmin: user.IsAdmin}
}

// canMutate is the owner-or-admin rule shared by resources, posts and replies.
func canMutate(actor Actor, ownerID uint64) bool {
	return actor.IsAdmin || actor.ID == ownerID
}
