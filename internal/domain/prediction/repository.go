package prediction

import "context"

type Repository interface {
	InsertUserPrediction(ctx context.Context, p UserPrediction) (string, error)
	InsertModelAudit(ctx context.Context, audit ModelAudit) error
	ListByUser(ctx context.Context, userID string, limit int) ([]HistoryItem, error)
	MetricsByUser(ctx context.Context, userID string) (Metrics, error)
}
