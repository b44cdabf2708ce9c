package extract

import (
	"sort"
	"strings"
	"unicode"

	"pitchside/internal/models"
)

// Risk tier keys, in tie-break priority order.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// tierPriority is the documented tie-break order: when two tiers accumulate
// the same keyword weight, the earlier tier wins.
var tierPriority = []string{TierHigh, TierMedium, TierLow}

// Base confidences per detection kind. Repeated mentions of the same entity in
// one utterance do not raise these.
const (
	teamConfidence   = 0.9
	leagueConfidence = 0.85
	styleConfidence  = 0.75
)

// Mention is one detected entity with its canonical name.
type Mention struct {
	Name       string
	Confidence float64
}

// Result is the preference delta extracted from a single utterance. A Result
// with no detections is valid; extraction never fails.
type Result struct {
	Teams           []Mention
	Leagues         []Mention
	Risk            models.RiskTolerance
	RiskConfidence  float64
	Style           string
	StyleConfidence float64
	BetTypes        []string
	Confidence      float64
}

// Empty reports whether the utterance produced no signal at all.
func (r Result) Empty() bool {
	return len(r.Teams) == 0 && len(r.Leagues) == 0 &&
		r.Risk == models.RiskUnknown && r.Style == "" && len(r.BetTypes) == 0
}

type entityKind int

const (
	kindTeam entityKind = iota
	kindLeague
)

type surfaceForm struct {
	surface   string
	canonical string
	kind      entityKind
}

// Extractor scans chat text for team, league, risk-tolerance, betting-style
// and bet-type vocabulary. It is a pure function over its inputs and safe for
// concurrent use.
type Extractor struct {
	lex      *Lexicon
	surfaces []surfaceForm // sorted longest surface first
}

func NewExtractor(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}

	surfaces := make([]surfaceForm, 0, len(lex.Teams)+len(lex.Leagues))
	for surface, canonical := range lex.Teams {
		surfaces = append(surfaces, surfaceForm{strings.ToLower(surface), canonical, kindTeam})
	}
	for surface, canonical := range lex.Leagues {
		surfaces = append(surfaces, surfaceForm{strings.ToLower(surface), canonical, kindLeague})
	}

	// Longest surface first, so "manchester city" claims its span before
	// "city" gets a chance to. Equal lengths order lexically for determinism.
	sort.Slice(surfaces, func(i, j int) bool {
		if len(surfaces[i].surface) != len(surfaces[j].surface) {
			return len(surfaces[i].surface) > len(surfaces[j].surface)
		}
		return surfaces[i].surface < surfaces[j].surface
	})

	return &Extractor{lex: lex, surfaces: surfaces}
}

// Extract produces the preference delta for one utterance.
func (e *Extractor) Extract(utterance string) Result {
	text := strings.ToLower(utterance)

	var res Result
	res.Risk = models.RiskUnknown

	teams, leagues := e.extractEntities(text)
	res.Teams = teams
	res.Leagues = leagues
	res.Risk, res.RiskConfidence = e.extractRisk(text)
	res.Style, res.StyleConfidence = e.extractStyle(text)
	res.BetTypes = e.extractBetTypes(text)
	res.Confidence = overallConfidence(res)

	return res
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// extractEntities finds team and league mentions, resolving overlapping
// matches in favor of the longest surface form.
func (e *Extractor) extractEntities(text string) (teams, leagues []Mention) {
	var claimed []span
	seenTeams := make(map[string]bool)
	seenLeagues := make(map[string]bool)

	for _, sf := range e.surfaces {
		for _, sp := range findWordSpans(text, sf.surface) {
			taken := false
			for _, c := range claimed {
				if sp.overlaps(c) {
					taken = true
					break
				}
			}
			if taken {
				continue
			}
			claimed = append(claimed, sp)

			switch sf.kind {
			case kindTeam:
				if !seenTeams[sf.canonical] {
					seenTeams[sf.canonical] = true
					teams = append(teams, Mention{Name: sf.canonical, Confidence: teamConfidence})
				}
			case kindLeague:
				if !seenLeagues[sf.canonical] {
					seenLeagues[sf.canonical] = true
					leagues = append(leagues, Mention{Name: sf.canonical, Confidence: leagueConfidence})
				}
			}
		}
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].Name < leagues[j].Name })
	return teams, leagues
}

// extractRisk scores every tier by cumulative keyword weight; the heaviest
// tier wins and ties resolve to the earliest tier in tierPriority.
func (e *Extractor) extractRisk(text string) (models.RiskTolerance, float64) {
	bestTier := ""
	bestWeight := 0.0
	bestHits := 0

	for _, tier := range tierPriority {
		weight := 0.0
		hits := 0
		for _, term := range e.lex.Risk[tier] {
			if containsWord(text, strings.ToLower(term.Term)) {
				weight += term.Weight
				hits++
			}
		}
		if weight > bestWeight {
			bestTier, bestWeight, bestHits = tier, weight, hits
		}
	}

	if bestTier == "" {
		return models.RiskUnknown, 0
	}

	conf := 0.55 + 0.15*float64(bestHits)
	if conf > 1.0 {
		conf = 1.0
	}
	return models.RiskTolerance(bestTier), conf
}

func (e *Extractor) extractStyle(text string) (string, float64) {
	styles := make([]string, 0, len(e.lex.Styles))
	for style := range e.lex.Styles {
		styles = append(styles, style)
	}
	sort.Strings(styles)

	for _, style := range styles {
		for _, term := range e.lex.Styles[style] {
			if containsWord(text, strings.ToLower(term)) {
				return style, styleConfidence
			}
		}
	}
	return "", 0
}

func (e *Extractor) extractBetTypes(text string) []string {
	var found []string
	for betType, terms := range e.lex.BetTypes {
		for _, term := range terms {
			if containsWord(text, strings.ToLower(term)) {
				found = append(found, betType)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

// overallConfidence mirrors the matched-category ratio: each of the five
// detection kinds that fired contributes one fifth.
func overallConfidence(r Result) float64 {
	score := 0.0
	if len(r.Teams) > 0 {
		score++
	}
	if len(r.Leagues) > 0 {
		score++
	}
	if r.Risk != models.RiskUnknown {
		score++
	}
	if r.Style != "" {
		score++
	}
	if len(r.BetTypes) > 0 {
		score++
	}
	return score / 5.0
}

// findWordSpans returns every occurrence of phrase in text that sits on word
// boundaries on both sides.
func findWordSpans(text, phrase string) []span {
	var spans []span
	if phrase == "" {
		return spans
	}

	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return spans
		}
		start := offset + idx
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			spans = append(spans, span{start, end})
		}
		offset = start + 1
	}
}

func containsWord(text, phrase string) bool {
	return len(findWordSpans(text, phrase)) > 0
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(text[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r := rune(text[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
