package teamstats

import "context"

type Repository interface {
	// UpsertBatch inserts or refreshes snapshots keyed on (team_id, year, as_of_week).
	UpsertBatch(ctx context.Context, snapshots []Snapshot) (int, error)
	// ListLatestByTeams returns the most recent snapshot per team for a year.
	ListLatestByTeams(ctx context.Context, year int, teamIDs []string) ([]Snapshot, error)
	ListLatest(ctx context.Context, year int) ([]Snapshot, error)
	ListAsOf(ctx context.Context, year, week int) ([]Snapshot, error)
}
