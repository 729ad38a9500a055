package profile

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	// Upsert creates the profile on first login and is a no-op refresh after.
	Upsert(ctx context.Context, p Profile) (Profile, error)
	IncrementFreePredictionsUsed(ctx context.Context, userID string) error
}
