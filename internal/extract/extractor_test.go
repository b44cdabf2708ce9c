package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchside/internal/models"
)

func mentionNames(mentions []Mention) []string {
	names := make([]string, 0, len(mentions))
	for _, m := range mentions {
		names = append(names, m.Name)
	}
	return names
}

func TestExtract_KnownTeamSurfaceForms(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name      string
		utterance string
		want      []string
	}{
		{"plain name", "I think Arsenal will win tonight", []string{"Arsenal"}},
		{"nickname", "the gunners looked sharp last week", []string{"Arsenal"}},
		{"abbreviation", "PSG are unstoppable at home", []string{"Paris Saint-Germain"}},
		{"case insensitive", "LIVERPOOL vs chelsea should be fun", []string{"Chelsea", "Liverpool"}},
		{"multiple teams", "Real Madrid against Barcelona, classic", []string{"Barcelona", "Real Madrid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Extract(tt.utterance)
			assert.Equal(t, tt.want, mentionNames(res.Teams))
		})
	}
}

func TestExtract_LongestSurfaceFormWins(t *testing.T) {
	e := NewExtractor(nil)

	res := e.Extract("Manchester City will dominate this season")
	assert.Equal(t, []string{"Manchester City"}, mentionNames(res.Teams))

	// Bare "City" still resolves when it stands alone
	res = e.Extract("City are my team")
	assert.Equal(t, []string{"Manchester City"}, mentionNames(res.Teams))

	// "Leicester City" must not leak a Manchester City mention
	res = e.Extract("Leicester City pulled off a miracle")
	assert.Equal(t, []string{"Leicester City"}, mentionNames(res.Teams))
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := NewExtractor(nil)

	// "inter" inside "winter" must not match Inter Milan
	res := e.Extract("the winter break is coming")
	assert.Empty(t, res.Teams)

	res = e.Extract("Inter have a strong squad")
	assert.Equal(t, []string{"Inter Milan"}, mentionNames(res.Teams))
}

func TestExtract_RepeatedMentionsDoNotRaiseConfidence(t *testing.T) {
	e := NewExtractor(nil)

	once := e.Extract("Arsenal are great")
	twice := e.Extract("Arsenal Arsenal Arsenal")

	require.Len(t, once.Teams, 1)
	require.Len(t, twice.Teams, 1)
	assert.Equal(t, once.Teams[0].Confidence, twice.Teams[0].Confidence)
}

func TestExtract_Leagues(t *testing.T) {
	e := NewExtractor(nil)

	res := e.Extract("any EPL tips for the weekend?")
	assert.Equal(t, []string{"Premier League"}, mentionNames(res.Leagues))

	res = e.Extract("I follow la liga and the champions league")
	assert.Equal(t, []string{"Champions League", "La Liga"}, mentionNames(res.Leagues))
}

func TestExtract_RiskTiers(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name      string
		utterance string
		want      models.RiskTolerance
	}{
		{"high", "I want high stakes, give me the thrill", models.RiskHigh},
		{"medium", "something moderate and balanced please", models.RiskMedium},
		{"low", "keep it safe and conservative", models.RiskLow},
		{"none", "when does the match start?", models.RiskUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Extract(tt.utterance)
			assert.Equal(t, tt.want, res.Risk)
		})
	}
}

func TestExtract_RiskTieBreakPrefersHigh(t *testing.T) {
	// "gamble" (high, 0.8) against "careful" (low, 0.8): equal cumulative
	// weight resolves to the higher tier.
	e := NewExtractor(nil)

	res := e.Extract("I like to gamble but I stay careful")
	assert.Equal(t, models.RiskHigh, res.Risk)
}

func TestExtract_HeavierTierWinsRegardlessOfOrder(t *testing.T) {
	e := NewExtractor(nil)

	// One low keyword against two high keywords
	res := e.Extract("playing it safe is boring, I want high stakes and adrenaline")
	assert.Equal(t, models.RiskHigh, res.Risk)

	// Two low keywords against one high keyword
	res = e.Extract("I gamble occasionally but mostly stay cautious with low stakes")
	assert.Equal(t, models.RiskLow, res.Risk)
}

func TestExtract_ExampleUtterance(t *testing.T) {
	e := NewExtractor(nil)

	res := e.Extract("I love Arsenal and the adrenaline of big stakes")

	assert.Contains(t, mentionNames(res.Teams), "Arsenal")
	assert.Equal(t, models.RiskHigh, res.Risk)
	assert.GreaterOrEqual(t, res.RiskConfidence, 0.6)
}

func TestExtract_BettingStyleAndBetTypes(t *testing.T) {
	e := NewExtractor(nil)

	res := e.Extract("I usually play an acca with btts and corners")
	assert.Equal(t, "accumulator", res.Style)
	assert.Equal(t, []string{"both_teams_score", "corners"}, res.BetTypes)
}

func TestExtract_NoSignalIsEmptyResult(t *testing.T) {
	e := NewExtractor(nil)

	for _, utterance := range []string{"", "hello there", "what's the weather like?"} {
		res := e.Extract(utterance)
		assert.True(t, res.Empty(), "expected empty result for %q", utterance)
		assert.Zero(t, res.Confidence)
	}
}

func TestExtract_OverallConfidence(t *testing.T) {
	e := NewExtractor(nil)

	// teams + risk fired out of five categories
	res := e.Extract("Arsenal and big stakes for me")
	assert.InDelta(t, 0.4, res.Confidence, 1e-9)
}

func TestLoadLexicon_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")

	content := []byte(`
teams:
  rovers: "Blackburn Rovers"
leagues:
  championship: "Championship"
risk:
  high:
    - term: reckless
      weight: 1.0
styles: {}
bet_types: {}
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	e := NewExtractor(lex)
	res := e.Extract("Rovers in the championship, I feel reckless")

	assert.Equal(t, []string{"Blackburn Rovers"}, mentionNames(res.Teams))
	assert.Equal(t, []string{"Championship"}, mentionNames(res.Leagues))
	assert.Equal(t, models.RiskHigh, res.Risk)
}

func TestLoadLexicon_MissingFile(t *testing.T) {
	_, err := LoadLexicon("/nonexistent/lexicon.yaml")
	assert.Error(t, err)
}
