package store

import (
	"context"

	"github.com/siriwatk/sornpim/internal/model"
)

// UserRecorder binds a store to a single user so typing sessions can
// persist results without carrying the user id around.
type UserRecorder struct {
	store  *Store
	userID string
}

// NewUserRecorder returns a recorder writing results for userID.
func NewUserRecorder(s *Store, userID string) *UserRecorder {
	return &UserRecorder{store: s, userID: userID}
}

// UpsertResult records a finished session for the bound user.
func (r *UserRecorder) UpsertResult(ctx context.Context, levelID string, result model.Result) error {
	return r.store.UpsertResult(ctx, r.userID, levelID, result)
}
