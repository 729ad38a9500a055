package game

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinal      Status = "FINAL"
)

type SeasonType string

const (
	SeasonTypePre  SeasonType = "PRE"
	SeasonTypeReg  SeasonType = "REG"
	SeasonTypePost SeasonType = "POST"
)

type Game struct {
	ID          string
	Year        int
	Week        int
	SeasonType  SeasonType
	HomeTeamID  string
	AwayTeamID  string
	KickoffTime *time.Time
	Status      Status
	HomeScore   *int
	AwayScore   *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var inProgressKeywords = []string{"PROGRESS", "LIVE", "Q1", "Q2", "Q3", "Q4", "OT", "HALF"}

// ClassifyStatus folds the provider's free-form status strings into the three
// states we persist. Unknown strings are treated as scheduled.
func ClassifyStatus(raw string) Status {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "F" || strings.Contains(upper, "FINAL") {
		return StatusFinal
	}
	for _, keyword := range inProgressKeywords {
		if strings.Contains(upper, keyword) {
			return StatusInProgress
		}
	}
	return StatusScheduled
}

// MapSeasonType folds the provider's numeric season type into ours.
func MapSeasonType(code int) SeasonType {
	switch code {
	case 1:
		return SeasonTypePre
	case 3:
		return SeasonTypePost
	default:
		return SeasonTypeReg
	}
}

func ParseSeasonType(raw string) (SeasonType, bool) {
	switch SeasonType(strings.ToUpper(strings.TrimSpace(raw))) {
	case SeasonTypePre:
		return SeasonTypePre, true
	case SeasonTypeReg:
		return SeasonTypeReg, true
	case SeasonTypePost:
		return SeasonTypePost, true
	default:
		return "", false
	}
}
