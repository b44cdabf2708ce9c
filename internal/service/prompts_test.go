package service

import (
	"testing"

	"pitchside/internal/models"
	"pitchside/internal/retrieval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeQuery(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"How is the team form of Liverpool?", CategoryTeamAnalysis},
		{"Arsenal vs Chelsea, who will win?", CategoryMatchPrediction},
		{"What is a good bankroll strategy?", CategoryBettingStrategy},
		{"Any injury news on the striker?", CategoryPlayerAnalysis},
		{"Show me the league standings", CategoryLeagueAnalysis},
		{"Is there value at this bookmaker price?", CategoryMarketAnalysis},
		{"hello there", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategorizeQuery(tt.query), "query: %q", tt.query)
	}
}

func TestCategorizeQuery_FirstCategoryWins(t *testing.T) {
	// Mentions both team and betting keywords; team group is checked first.
	assert.Equal(t, CategoryTeamAnalysis, CategorizeQuery("Which team should I bet on?"))
}

func TestBuildSystemPrompt_IncludesProfile(t *testing.T) {
	profile := models.NewUserProfile(uuid.New())
	profile.FavoriteTeams = []string{"Arsenal", "Liverpool"}
	profile.FavoriteLeagues = []string{"Premier League"}
	profile.RiskTolerance = models.RiskHigh
	profile.BettingStyle = "analytical"

	prompt := BuildSystemPrompt(profile, CategoryGeneral, nil)

	assert.Contains(t, prompt, "Arsenal, Liverpool")
	assert.Contains(t, prompt, "Premier League")
	assert.Contains(t, prompt, "Risk tolerance: high")
	assert.Contains(t, prompt, "Betting style: analytical")
}

func TestBuildSystemPrompt_SkipsUnknownRisk(t *testing.T) {
	profile := models.NewUserProfile(uuid.New())

	prompt := BuildSystemPrompt(profile, CategoryGeneral, nil)

	assert.NotContains(t, prompt, "Risk tolerance")
	assert.NotContains(t, prompt, "Favorite teams")
}

func TestBuildSystemPrompt_IncludesCategoryGuidance(t *testing.T) {
	prompt := BuildSystemPrompt(nil, CategoryMatchPrediction, nil)

	assert.Contains(t, prompt, "QUERY FOCUS")
	assert.Contains(t, prompt, "head-to-head record")
}

func TestBuildSystemPrompt_GeneralCategoryHasNoGuidance(t *testing.T) {
	prompt := BuildSystemPrompt(nil, CategoryGeneral, nil)

	assert.NotContains(t, prompt, "QUERY FOCUS")
}

func TestBuildSystemPrompt_IncludesRetrievedKnowledge(t *testing.T) {
	results := []retrieval.RankedResult{
		{Document: models.Document{
			Title:    "Value Betting Fundamentals",
			Body:     "Value betting means finding odds priced above true probability.",
			Category: models.CategoryBettingStrategy,
		}},
	}

	prompt := BuildSystemPrompt(nil, CategoryGeneral, results)

	assert.Contains(t, prompt, "RELEVANT KNOWLEDGE")
	assert.Contains(t, prompt, "Value Betting Fundamentals")
	assert.Contains(t, prompt, "priced above true probability")
}
