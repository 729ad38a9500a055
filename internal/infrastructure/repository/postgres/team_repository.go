package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/team"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

var teamColumns = []string{
	"id", "abbreviation", "name", "conference", "division",
	"primary_color", "secondary_color", "logo_url", "created_at", "updated_at",
}

type teamRow struct {
	ID             string         `db:"id"`
	Abbreviation   string         `db:"abbreviation"`
	Name           string         `db:"name"`
	Conference     string         `db:"conference"`
	Division       string         `db:"division"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	LogoURL        sql.NullString `db:"logo_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r teamRow) toDomain() team.Team {
	return team.Team{
		ID:             r.ID,
		Abbreviation:   r.Abbreviation,
		Name:           r.Name,
		Conference:     r.Conference,
		Division:       r.Division,
		PrimaryColor:   fromNullString(r.PrimaryColor),
		SecondaryColor: fromNullString(r.SecondaryColor),
		LogoURL:        fromNullString(r.LogoURL),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type aliasRow struct {
	Provider string `db:"provider"`
	Alias    string `db:"alias"`
	TeamID   string `db:"team_id"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build teams query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toDomain())
	}
	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build team query: %w", err)
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team %s: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListAliasesByProvider(ctx context.Context, provider string) ([]team.Alias, error) {
	query, args, err := qb.Select("provider", "alias", "team_id").
		From("team_aliases").
		Where(qb.Eq("provider", provider)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team aliases query: %w", err)
	}

	var rows []aliasRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team aliases: %w", err)
	}

	aliases := make([]team.Alias, 0, len(rows))
	for _, row := range rows {
		aliases = append(aliases, team.Alias{Provider: row.Provider, Alias: row.Alias, TeamID: row.TeamID})
	}
	return aliases, nil
}
