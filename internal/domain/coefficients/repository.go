package coefficients

import "context"

type Repository interface {
	GetActive(ctx context.Context) (Set, bool, error)
}
