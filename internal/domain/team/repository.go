package team

import "context"

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListAliasesByProvider(ctx context.Context, provider string) ([]Alias, error)
}
