package models

import (
	"time"

	"github.com/google/uuid"
)

type RiskTolerance string

const (
	RiskLow     RiskTolerance = "low"
	RiskMedium  RiskTolerance = "medium"
	RiskHigh    RiskTolerance = "high"
	RiskUnknown RiskTolerance = "unknown"
)

// ParseRiskTolerance maps a stored string to a RiskTolerance, defaulting to unknown.
func ParseRiskTolerance(s string) RiskTolerance {
	switch RiskTolerance(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTolerance(s)
	default:
		return RiskUnknown
	}
}

// UserProfile holds the preferences accumulated from a user's conversations.
// Team and league sets grow additively; risk tolerance and betting style carry
// the confidence of the detection that last set them so that weaker evidence
// never silently overwrites stronger evidence.
type UserProfile struct {
	UserID          uuid.UUID     `db:"user_id"`
	FavoriteTeams   []string      `db:"favorite_teams"`
	FavoriteLeagues []string      `db:"favorite_leagues"`
	RiskTolerance   RiskTolerance `db:"risk_tolerance"`
	RiskConfidence  float64       `db:"risk_confidence"`
	BettingStyle    string        `db:"betting_style"`
	StyleConfidence float64       `db:"style_confidence"`
	BetTypes        []string      `db:"bet_types"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// NewUserProfile returns the default profile created on first interaction.
func NewUserProfile(userID uuid.UUID) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:        userID,
		RiskTolerance: RiskUnknown,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasTeam reports whether the canonical team name is already in the profile.
func (p *UserProfile) HasTeam(name string) bool {
	for _, t := range p.FavoriteTeams {
		if t == name {
			return true
		}
	}
	return false
}

// HasLeague reports whether the canonical league name is already in the profile.
func (p *UserProfile) HasLeague(name string) bool {
	for _, l := range p.FavoriteLeagues {
		if l == name {
			return true
		}
	}
	return false
}
