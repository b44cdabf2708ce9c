package main

import (
	"context"
	"log"
	"time"

	"pitchside/internal/embedding"
	"pitchside/internal/models"
	"pitchside/internal/repository"
	"pitchside/pkg/config"
	"pitchside/pkg/logger"
	"pitchside/pkg/postgres"

	"go.uber.org/zap"
)

type seedDocument struct {
	Title    string
	Category models.DocumentCategory
	Body     string
}

var seedDocuments = []seedDocument{
	{
		Title:    "Liverpool FC Profile",
		Category: models.CategoryTeam,
		Body: `Liverpool Football Club is an English professional football club based in Liverpool. Founded in 1892, Liverpool has won 19 league titles, 8 FA Cups, 9 League Cups and 6 European Cups.

Recent Performance:
- Premier League Champions 2019-20
- Champions League Winners 2018-19
- Key Players: Mohamed Salah, Virgil van Dijk
- Home Stadium: Anfield (capacity: 53,394)

Playing Style: Known for gegenpressing, fast transitions, and attacking full-backs.
Strengths: Strong mentality, excellent in big games, solid defense.
Weaknesses: Can struggle against deep defensive blocks, injury-prone squad depth.`,
	},
	{
		Title:    "Manchester City Profile",
		Category: models.CategoryTeam,
		Body: `Manchester City is an English football club based in Manchester. Under Pep Guardiola, City became one of the most dominant teams in world football.

Recent Performance:
- Premier League Champions 2020-21, 2021-22, 2022-23
- Champions League Winners 2022-23
- Key Players: Kevin De Bruyne, Erling Haaland, Rodri
- Home Stadium: Etihad Stadium (capacity: 55,017)

Playing Style: Possession-based football, positional play, high defensive line.
Strengths: Technical quality, squad depth, tactical flexibility.
Weaknesses: Can be vulnerable to counter-attacks.`,
	},
	{
		Title:    "Value Betting Strategy",
		Category: models.CategoryBettingStrategy,
		Body: `Value betting is the practice of betting when the probability of an outcome is greater than the probability implied by the bookmaker's odds.

Key Principles:
1. Calculate true probability of outcomes
2. Compare with bookmaker's implied probability
3. Bet when you find positive expected value
4. Use proper bankroll management

Example: If you calculate Liverpool has a 60% chance to win, but odds imply 50% (2.00 odds), this represents value.

Risk Management:
- Never bet more than 2-5% of bankroll on a single bet
- Track all bets and results
- Focus on long-term profitability
- Avoid emotional betting`,
	},
	{
		Title:    "Team Form Analysis",
		Category: models.CategoryBettingStrategy,
		Body: `Analyzing team form is crucial for successful football betting.

Key Metrics to Track:
1. Recent results (last 5-10 games)
2. Goals scored and conceded
3. Home vs away performance
4. Head-to-head records
5. Injury list and suspensions

Advanced Metrics:
- Expected goals (xG) vs actual goals
- Shot conversion rates
- Possession statistics

Red Flags:
- Multiple key player injuries
- Recent manager changes
- Poor away form for the traveling team
- Midweek European fixtures causing fatigue`,
	},
	{
		Title:    "Liverpool vs Manchester City Head-to-Head",
		Category: models.CategoryMatch,
		Body: `Historical analysis of Liverpool vs Manchester City fixtures.

Recent Meetings (Last 10):
- Liverpool wins: 4
- Manchester City wins: 4
- Draws: 2
- Average goals per game: 2.8

Key Trends:
- High-scoring fixtures (over 2.5 goals in 70% of meetings)
- Both teams to score in 80% of recent meetings
- City stronger at the Etihad, Liverpool stronger at Anfield

Betting Insights:
- Over 2.5 goals is often good value
- Both teams to score is reliable
- Home advantage is significant in this fixture`,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	embedder := embedding.NewOpenAIEmbedder(&cfg.OpenAI, cfg.Retrieval.Dimensions, appLogger)

	appLogger.Info("Seeding knowledge base", zap.Int("documents", len(seedDocuments)))

	for _, seed := range seedDocuments {
		vector, err := embedder.Embed(ctx, seed.Body)
		if err != nil {
			appLogger.Fatal("Failed to embed document", zap.Error(err), zap.String("title", seed.Title))
		}

		now := time.Now()
		doc := &models.Document{
			ID:        models.DocumentID(seed.Title, seed.Body),
			Title:     seed.Title,
			Body:      seed.Body,
			Category:  seed.Category,
			Source:    "seed",
			Embedding: vector,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := knowledgeRepo.Upsert(ctx, doc); err != nil {
			appLogger.Fatal("Failed to store document", zap.Error(err), zap.String("title", seed.Title))
		}

		appLogger.Info("Seeded document",
			zap.String("doc_id", doc.ID),
			zap.String("title", doc.Title),
			zap.String("category", string(doc.Category)),
		)
	}

	appLogger.Info("Knowledge base seeding completed")
}
