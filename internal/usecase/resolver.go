package usecase

import (
	"fmt"
	"strings"

	"github.com/gridironhq/gridiron/internal/domain/team"
)

// TeamResolver maps provider team keys to team ids from a point-in-time
// snapshot of the alias table. Provider aliases win; a team's abbreviation is
// only consulted when no alias claims the key.
type TeamResolver struct {
	byKey map[string]string
}

func NewTeamResolver(teams []team.Team, aliases []team.Alias) *TeamResolver {
	byKey := make(map[string]string, len(aliases)+len(teams))
	for _, a := range aliases {
		key := normalizeTeamKey(a.Alias)
		if key == "" || a.TeamID == "" {
			continue
		}
		byKey[key] = a.TeamID
	}
	for _, t := range teams {
		key := normalizeTeamKey(t.Abbreviation)
		if key == "" || t.ID == "" {
			continue
		}
		if _, claimed := byKey[key]; !claimed {
			byKey[key] = t.ID
		}
	}
	return &TeamResolver{byKey: byKey}
}

func (r *TeamResolver) Resolve(providerKey string) (string, error) {
	id, ok := r.byKey[normalizeTeamKey(providerKey)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnresolvedTeam, providerKey)
	}
	return id, nil
}

func (r *TeamResolver) Size() int {
	return len(r.byKey)
}

func normalizeTeamKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
