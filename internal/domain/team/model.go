package team

import "time"

const ProviderSportsData = "sportsdata"

type Team struct {
	ID             string
	Abbreviation   string
	Name           string
	Conference     string
	Division       string
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Alias maps a provider-side team key to our team id.
type Alias struct {
	Provider string
	Alias    string
	TeamID   string
}
