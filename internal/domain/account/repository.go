package account

import "context"

type Repository interface {
	ListByIDs(ctx context.Context, ids []string) ([]Account, error)
}
