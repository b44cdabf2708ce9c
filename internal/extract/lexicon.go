package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RiskTerm is one weighted keyword of a risk tier.
type RiskTerm struct {
	Term   string  `yaml:"term"`
	Weight float64 `yaml:"weight"`
}

// Lexicon holds the vocabulary the extractor matches against. Surface forms
// (abbreviations and nicknames included) map to canonical entity names, so a
// lexicon can be extended without touching the matching code.
type Lexicon struct {
	Teams    map[string]string     `yaml:"teams"`
	Leagues  map[string]string     `yaml:"leagues"`
	Risk     map[string][]RiskTerm `yaml:"risk"`
	Styles   map[string][]string   `yaml:"styles"`
	BetTypes map[string][]string   `yaml:"bet_types"`
}

// LoadLexicon reads a lexicon from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	return &lex, nil
}

// DefaultLexicon returns the compiled-in football vocabulary.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Teams: map[string]string{
			// Premier League
			"arsenal":           "Arsenal",
			"gunners":           "Arsenal",
			"chelsea":           "Chelsea",
			"liverpool":         "Liverpool",
			"manchester united": "Manchester United",
			"man united":        "Manchester United",
			"man utd":           "Manchester United",
			"manchester city":   "Manchester City",
			"man city":          "Manchester City",
			"city":              "Manchester City",
			"tottenham":         "Tottenham Hotspur",
			"spurs":             "Tottenham Hotspur",
			"newcastle":         "Newcastle United",
			"west ham":          "West Ham United",
			"everton":           "Everton",
			"aston villa":       "Aston Villa",
			"leicester":         "Leicester City",
			"leicester city":    "Leicester City",
			"brighton":          "Brighton",
			"wolves":            "Wolverhampton Wanderers",
			"crystal palace":    "Crystal Palace",
			"fulham":            "Fulham",
			"brentford":         "Brentford",
			"nottingham forest": "Nottingham Forest",
			"bournemouth":       "Bournemouth",

			// La Liga
			"real madrid":     "Real Madrid",
			"barcelona":       "Barcelona",
			"barca":           "Barcelona",
			"atletico madrid": "Atletico Madrid",
			"atletico":        "Atletico Madrid",
			"sevilla":         "Sevilla",
			"valencia":        "Valencia",
			"villarreal":      "Villarreal",
			"real sociedad":   "Real Sociedad",
			"athletic bilbao": "Athletic Bilbao",
			"betis":           "Real Betis",
			"celta vigo":      "Celta Vigo",

			// Serie A
			"juventus":    "Juventus",
			"juve":        "Juventus",
			"ac milan":    "AC Milan",
			"inter milan": "Inter Milan",
			"inter":       "Inter Milan",
			"napoli":      "Napoli",
			"roma":        "Roma",
			"lazio":       "Lazio",
			"atalanta":    "Atalanta",
			"fiorentina":  "Fiorentina",

			// Bundesliga
			"bayern munich":     "Bayern Munich",
			"bayern":            "Bayern Munich",
			"borussia dortmund": "Borussia Dortmund",
			"dortmund":          "Borussia Dortmund",
			"rb leipzig":        "RB Leipzig",
			"bayer leverkusen":  "Bayer Leverkusen",
			"leverkusen":        "Bayer Leverkusen",

			// Ligue 1
			"paris saint-germain": "Paris Saint-Germain",
			"psg":                 "Paris Saint-Germain",
			"marseille":           "Marseille",
			"lyon":                "Lyon",
			"monaco":              "Monaco",
			"lille":               "Lille",

			// Other popular clubs
			"ajax":    "Ajax",
			"benfica": "Benfica",
			"porto":   "Porto",
			"celtic":  "Celtic",
			"rangers": "Rangers",
		},
		Leagues: map[string]string{
			"premier league":         "Premier League",
			"english premier league": "Premier League",
			"epl":                    "Premier League",
			"la liga":                "La Liga",
			"spanish league":         "La Liga",
			"primera division":       "La Liga",
			"serie a":                "Serie A",
			"italian league":         "Serie A",
			"bundesliga":             "Bundesliga",
			"german league":          "Bundesliga",
			"ligue 1":                "Ligue 1",
			"french league":          "Ligue 1",
			"champions league":       "Champions League",
			"ucl":                    "Champions League",
			"europa league":          "Europa League",
			"uel":                    "Europa League",
			"world cup":              "World Cup",
			"fifa world cup":         "World Cup",
			"euros":                  "European Championship",
			"european championship":  "European Championship",
		},
		Risk: map[string][]RiskTerm{
			TierHigh: {
				{Term: "adrenaline", Weight: 1.0},
				{Term: "rush", Weight: 0.8},
				{Term: "thrill", Weight: 0.8},
				{Term: "high risk", Weight: 1.2},
				{Term: "risky", Weight: 1.0},
				{Term: "aggressive", Weight: 1.0},
				{Term: "gamble", Weight: 0.8},
				{Term: "big bet", Weight: 1.0},
				{Term: "all in", Weight: 1.2},
				{Term: "all or nothing", Weight: 1.2},
				{Term: "high stakes", Weight: 1.2},
				{Term: "big stakes", Weight: 1.2},
				{Term: "maximum bet", Weight: 1.2},
				{Term: "go big", Weight: 1.0},
				{Term: "wild", Weight: 0.6},
				{Term: "don't mind losing", Weight: 1.0},
				{Term: "dont mind losing", Weight: 1.0},
			},
			TierMedium: {
				{Term: "moderate", Weight: 1.0},
				{Term: "balanced", Weight: 1.0},
				{Term: "medium risk", Weight: 1.2},
				{Term: "reasonable", Weight: 0.8},
				{Term: "sensible", Weight: 0.8},
				{Term: "normal", Weight: 0.6},
				{Term: "standard", Weight: 0.6},
			},
			TierLow: {
				{Term: "safe", Weight: 1.0},
				{Term: "conservative", Weight: 1.0},
				{Term: "low risk", Weight: 1.2},
				{Term: "cautious", Weight: 1.0},
				{Term: "careful", Weight: 0.8},
				{Term: "secure", Weight: 0.8},
				{Term: "minimal", Weight: 0.6},
				{Term: "play it safe", Weight: 1.2},
				{Term: "small bet", Weight: 1.0},
				{Term: "safe bet", Weight: 1.2},
				{Term: "low stakes", Weight: 1.2},
			},
		},
		Styles: map[string][]string{
			"accumulator": {"accumulator", "acca", "parlay", "combo bet", "multiple bet"},
			"single":      {"single bet", "straight bet"},
			"system":      {"system bet", "yankee", "patent", "trixie"},
			"live":        {"live betting", "in-play", "in play"},
			"value":       {"value bet", "value betting", "good odds"},
		},
		BetTypes: map[string][]string{
			"match_result":      {"1x2", "match result", "full time result"},
			"over_under":        {"over under", "total goals", "o/u", "over 2.5", "under 2.5"},
			"both_teams_score":  {"both teams score", "both teams to score", "btts", "both to score"},
			"handicap":          {"handicap", "asian handicap", "spread"},
			"correct_score":     {"correct score", "exact score"},
			"first_goalscorer":  {"first goalscorer", "anytime goalscorer"},
			"cards":             {"yellow cards", "red cards"},
			"corners":           {"corners", "corner kicks"},
		},
	}
}
