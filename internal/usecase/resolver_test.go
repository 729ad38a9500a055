package usecase

import (
	"errors"
	"testing"

	"github.com/gridironhq/gridiron/internal/domain/team"
)

func TestTeamResolverPrefersAliases(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "team-chiefs", Abbreviation: "KC"}}
	aliases := []team.Alias{{Provider: team.ProviderSportsData, Alias: "KC", TeamID: "team-chiefs-alias"}}

	r := NewTeamResolver(teams, aliases)

	id, err := r.Resolve("KC")
	if err != nil {
		t.Fatalf("Resolve returned %v", err)
	}
	if id != "team-chiefs-alias" {
		t.Fatalf("Resolve = %q, want alias mapping to win", id)
	}
}

func TestTeamResolverAbbreviationFallback(t *testing.T) {
	t.Parallel()

	teams := []team.Team{{ID: "team-bills", Abbreviation: "BUF"}}

	r := NewTeamResolver(teams, nil)

	id, err := r.Resolve("buf")
	if err != nil {
		t.Fatalf("Resolve returned %v", err)
	}
	if id != "team-bills" {
		t.Fatalf("Resolve = %q, want team-bills", id)
	}
}

func TestTeamResolverNormalizesKeys(t *testing.T) {
	t.Parallel()

	aliases := []team.Alias{{Provider: team.ProviderSportsData, Alias: "lar", TeamID: "team-rams"}}

	r := NewTeamResolver(nil, aliases)

	id, err := r.Resolve("  LAR ")
	if err != nil {
		t.Fatalf("Resolve returned %v", err)
	}
	if id != "team-rams" {
		t.Fatalf("Resolve = %q, want team-rams", id)
	}
}

func TestTeamResolverUnknownKey(t *testing.T) {
	t.Parallel()

	r := NewTeamResolver(nil, nil)

	_, err := r.Resolve("OAK")
	if !errors.Is(err, ErrUnresolvedTeam) {
		t.Fatalf("err = %v, want ErrUnresolvedTeam", err)
	}
}
