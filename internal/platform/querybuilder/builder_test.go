package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "abbreviation").
		From("teams").
		Where(Eq("conference", "NFC"), In("division", []any{"East", "North"})).
		OrderBy("name ASC").
		Limit(10).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, abbreviation FROM teams WHERE conference = $1 AND division IN ($2, $3) ORDER BY name ASC LIMIT 10", sql)
	assert.Equal(t, []any{"NFC", "East", "North"}, args)
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("teams").Where(In("id", nil)).ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM teams WHERE 1=0", sql)
	assert.Empty(t, args)
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	t.Parallel()

	_, _, err := Select("id").ToSQL()
	require.Error(t, err)
}

func TestInsertBuilderWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("team_aliases").
		Columns("provider", "alias", "team_id").
		Values("sportsdata", "KC", "team-1").
		Suffix("ON CONFLICT (provider, alias) DO UPDATE SET team_id = EXCLUDED.team_id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO team_aliases (provider, alias, team_id) VALUES ($1, $2, $3) "+
			"ON CONFLICT (provider, alias) DO UPDATE SET team_id = EXCLUDED.team_id",
		sql)
	assert.Equal(t, []any{"sportsdata", "KC", "team-1"}, args)
}

func TestInsertBuilderRowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("teams").Columns("id", "name").Values("only-one").ToSQL()
	require.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("profiles").
		Set("is_premium", true).
		Where(Eq("user_id", "user-1")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE profiles SET is_premium = $1 WHERE user_id = $2", sql)
	assert.Equal(t, []any{true, "user-1"}, args)
}

func TestExprPlaceholderRewrite(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("games").
		Where(Eq("year", 2025), Expr("week BETWEEN ? AND ?", 1, 18)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM games WHERE year = $1 AND week BETWEEN $2 AND $3", sql)
	assert.Equal(t, []any{2025, 1, 18}, args)
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Internal string `db:"-"`
	}

	sql, args, err := InsertModel("teams", row{ID: "team-1", Name: "Kansas City Chiefs"}, "")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO teams (id, name) VALUES ($1, $2)", sql)
	assert.Equal(t, []any{"team-1", "Kansas City Chiefs"}, args)
}
