package service

import (
	"fmt"
	"strings"

	"pitchside/internal/models"
	"pitchside/internal/retrieval"
)

const bettingSystemPrompt = `You are an expert football betting assistant with deep knowledge of football analysis, betting strategies, and risk management. Your role is to provide intelligent, data-driven insights to help users make informed betting decisions.

CORE CAPABILITIES:
- Analyze team form, player statistics, and match dynamics
- Provide betting strategy recommendations based on data
- Explain market movements and betting value opportunities
- Offer risk management advice and bankroll management tips
- Answer questions about football leagues, teams, and players

PERSONALITY & TONE:
- Professional but approachable
- Data-driven and analytical
- Honest about uncertainties and risks
- Never overly confident, never guarantee wins

BETTING PRINCIPLES TO FOLLOW:
1. Always emphasize responsible gambling
2. Focus on value betting over sure wins
3. Recommend proper bankroll management (1-3% per bet)
4. Explain the reasoning behind suggestions
5. Mention when information is incomplete or uncertain
6. Encourage long-term thinking over quick wins

RISK WARNINGS TO INCLUDE:
- Betting involves risk and potential loss
- Past performance doesn't guarantee future results
- Never bet more than you can afford to lose

When you don't have specific information, acknowledge this limitation and suggest general principles or alternatives.`

const fallbackResponse = `I apologize, but I'm having difficulty processing your request right now. Could you please rephrase your question with more details, or ask about general betting principles instead? I'm here to help with football betting analysis, team insights, and strategy discussions.`

// Query categories steer which slice of the knowledge base gets retrieved.
const (
	CategoryGeneral         = "general"
	CategoryTeamAnalysis    = "team_analysis"
	CategoryMatchPrediction = "match_prediction"
	CategoryBettingStrategy = "betting_strategy"
	CategoryPlayerAnalysis  = "player_analysis"
	CategoryLeagueAnalysis  = "league_analysis"
	CategoryMarketAnalysis  = "market_analysis"
)

var queryCategoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryTeamAnalysis, []string{"team", "form", "performance", "squad", "players", "manager", "tactics"}},
	{CategoryMatchPrediction, []string{"vs", "match", "game", "fixture", "prediction", "who will win", "score"}},
	{CategoryBettingStrategy, []string{"bet", "odds", "value", "strategy", "bankroll", "stake", "profitable"}},
	{CategoryPlayerAnalysis, []string{"player", "injury", "suspension", "transfer", "goals", "assists"}},
	{CategoryLeagueAnalysis, []string{"league", "table", "standings", "championship", "premier league", "champions league"}},
	{CategoryMarketAnalysis, []string{"market", "bookmaker", "price", "movement", "value bet"}},
}

// CategorizeQuery maps a user message to a query category by substring match.
// Categories are checked in a fixed order and the first hit wins.
func CategorizeQuery(query string) string {
	lower := strings.ToLower(query)
	for _, group := range queryCategoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return CategoryGeneral
}

// categoryGuidance steers the answer shape per detected query category.
var categoryGuidance = map[string]string{
	CategoryTeamAnalysis:    "The user is asking about a team. Cover recent form, strengths, weaknesses and tactical setup before any betting angle.",
	CategoryMatchPrediction: "The user wants a match prediction. Weigh head-to-head record, current form and home advantage, and state your confidence level.",
	CategoryBettingStrategy: "The user is asking about betting strategy. Explain the approach, the expected value reasoning and bankroll guidance.",
	CategoryPlayerAnalysis:  "The user is asking about players. Focus on availability, injuries, suspensions and their impact on match outcomes.",
	CategoryLeagueAnalysis:  "The user is asking about a league or competition. Use standings context and what is at stake for the teams involved.",
	CategoryMarketAnalysis:  "The user is asking about the betting market. Discuss odds movement, implied probability and where value may sit.",
}

// BuildSystemPrompt assembles the system instruction for one chat turn:
// the base assistant persona, the user's accumulated profile, guidance for
// the detected query category, and the retrieved knowledge context.
func BuildSystemPrompt(profile *models.UserProfile, category string, results []retrieval.RankedResult) string {
	var b strings.Builder
	b.WriteString(bettingSystemPrompt)

	b.WriteString("\n\nUSER CONTEXT:\n")
	if profile != nil {
		if len(profile.FavoriteTeams) > 0 {
			fmt.Fprintf(&b, "- Favorite teams: %s\n", strings.Join(profile.FavoriteTeams, ", "))
		}
		if len(profile.FavoriteLeagues) > 0 {
			fmt.Fprintf(&b, "- Follows leagues: %s\n", strings.Join(profile.FavoriteLeagues, ", "))
		}
		if profile.BettingStyle != "" {
			fmt.Fprintf(&b, "- Betting style: %s\n", profile.BettingStyle)
		}
		if profile.RiskTolerance != models.RiskUnknown {
			fmt.Fprintf(&b, "- Risk tolerance: %s\n", profile.RiskTolerance)
		}
	}

	if guidance, ok := categoryGuidance[category]; ok {
		b.WriteString("\nQUERY FOCUS:\n")
		b.WriteString(guidance)
		b.WriteString("\n")
	}

	if len(results) > 0 {
		b.WriteString("\nRELEVANT KNOWLEDGE:\n")
		for _, r := range results {
			fmt.Fprintf(&b, "[%s] %s\n%s\n\n", r.Document.Category, r.Document.Title, r.Document.Body)
		}
	}

	b.WriteString(`
PERSONALIZATION INSTRUCTIONS:
- Reference the user's favorite teams when relevant
- Adapt recommendations to their betting style and risk tolerance
- Use examples from their preferred leagues when possible
- Ground your answer in the relevant knowledge above when it applies
`)

	return b.String()
}
