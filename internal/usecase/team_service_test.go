package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridironhq/gridiron/internal/platform/logging"
)

func newTeamService(teams *stubTeamRepo) *TeamService {
	return NewTeamService(teams, &stubGameRepo{}, &stubStatsRepo{}, nil, logging.NewNop())
}

func TestGetTeamReturnsMatch(t *testing.T) {
	t.Parallel()

	svc := newTeamService(&stubTeamRepo{teams: syncTeams()})

	got, err := svc.GetTeam(context.Background(), "team-bills")
	if err != nil {
		t.Fatalf("GetTeam returned %v", err)
	}
	if got.Abbreviation != "BUF" {
		t.Fatalf("Abbreviation = %s, want BUF", got.Abbreviation)
	}
}

func TestGetTeamUnknownID(t *testing.T) {
	t.Parallel()

	svc := newTeamService(&stubTeamRepo{teams: syncTeams()})

	_, err := svc.GetTeam(context.Background(), "team-nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetTeamEmptyID(t *testing.T) {
	t.Parallel()

	svc := newTeamService(&stubTeamRepo{teams: syncTeams()})

	_, err := svc.GetTeam(context.Background(), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
