package dto

type PreferencesResponse struct {
	FavoriteTeams   []string `json:"favorite_teams"`
	FavoriteLeagues []string `json:"favorite_leagues"`
	RiskTolerance   string   `json:"risk_tolerance"`
	RiskConfidence  float64  `json:"risk_confidence"`
	BettingStyle    string   `json:"betting_style,omitempty"`
	StyleConfidence float64  `json:"style_confidence,omitempty"`
	BetTypes        []string `json:"bet_types,omitempty"`
	UpdatedAt       string   `json:"updated_at"`
}

type UpdatePreferencesRequest struct {
	FavoriteTeams   []string `json:"favorite_teams,omitempty" validate:"omitempty,dive,min=1,max=64"`
	FavoriteLeagues []string `json:"favorite_leagues,omitempty" validate:"omitempty,dive,min=1,max=64"`
	RiskTolerance   string   `json:"risk_tolerance,omitempty" validate:"omitempty,oneof=low medium high"`
	BettingStyle    string   `json:"betting_style,omitempty" validate:"omitempty,max=64"`
}
