package sportsdata

type scoreRow struct {
	Season     int     `json:"Season"`
	SeasonType int     `json:"SeasonType"`
	Week       int     `json:"Week"`
	HomeTeam   string  `json:"HomeTeam"`
	AwayTeam   string  `json:"AwayTeam"`
	HomeScore  *int    `json:"HomeScore"`
	AwayScore  *int    `json:"AwayScore"`
	Status     string  `json:"Status"`
	DateTime   *string `json:"DateTime"`
}

type teamSeasonStatsRow struct {
	Team   string `json:"Team"`
	Season int    `json:"Season"`
	Games  int    `json:"Games"`

	PointsFor               float64 `json:"PointsFor"`
	TotalYards              float64 `json:"TotalYards"`
	PassingYards            float64 `json:"PassingYards"`
	RushingYards            float64 `json:"RushingYards"`
	RedZoneAttempts         float64 `json:"RedZoneAttempts"`
	RedZoneConversions      float64 `json:"RedZoneConversions"`
	ThirdDownAttempts       float64 `json:"ThirdDownAttempts"`
	ThirdDownConversions    float64 `json:"ThirdDownConversions"`
	Turnovers               float64 `json:"Turnovers"`
	TimeOfPossessionMinutes float64 `json:"TimeOfPossessionMinutes"`
	TimeOfPossessionSeconds float64 `json:"TimeOfPossessionSeconds"`

	OpponentPointsFor            float64 `json:"OpponentPointsFor"`
	OpponentTotalYards           float64 `json:"OpponentTotalYards"`
	OpponentPassingYards         float64 `json:"OpponentPassingYards"`
	OpponentRushingYards         float64 `json:"OpponentRushingYards"`
	OpponentRedZoneAttempts      float64 `json:"OpponentRedZoneAttempts"`
	OpponentRedZoneConversions   float64 `json:"OpponentRedZoneConversions"`
	OpponentThirdDownAttempts    float64 `json:"OpponentThirdDownAttempts"`
	OpponentThirdDownConversions float64 `json:"OpponentThirdDownConversions"`
	OpponentTurnovers            float64 `json:"OpponentTurnovers"`

	Sacks                float64 `json:"Sacks"`
	TurnoverDifferential float64 `json:"TurnoverDifferential"`
	PenaltyYards         float64 `json:"PenaltyYards"`
}
