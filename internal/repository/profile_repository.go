package repository

import (
	"context"
	"errors"

	"pitchside/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	query := squirrel.Select(
		"user_id", "favorite_teams", "favorite_leagues",
		"risk_tolerance", "risk_confidence",
		"betting_style", "style_confidence",
		"bet_types", "created_at", "updated_at").
		From("user_preferences").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	var risk string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.UserID, &profile.FavoriteTeams, &profile.FavoriteLeagues,
		&risk, &profile.RiskConfidence,
		&profile.BettingStyle, &profile.StyleConfidence,
		&profile.BetTypes, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.RiskTolerance = models.ParseRiskTolerance(risk)
	return &profile, nil
}

// Save upserts the whole profile row. The merge semantics live in the
// profile service; the repository just persists the resulting state.
func (r *ProfileRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	query := squirrel.Insert("user_preferences").
		Columns("user_id", "favorite_teams", "favorite_leagues",
			"risk_tolerance", "risk_confidence",
			"betting_style", "style_confidence",
			"bet_types", "created_at", "updated_at").
		Values(profile.UserID, profile.FavoriteTeams, profile.FavoriteLeagues,
			string(profile.RiskTolerance), profile.RiskConfidence,
			profile.BettingStyle, profile.StyleConfidence,
			profile.BetTypes, profile.CreatedAt, profile.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			favorite_teams = EXCLUDED.favorite_teams,
			favorite_leagues = EXCLUDED.favorite_leagues,
			risk_tolerance = EXCLUDED.risk_tolerance,
			risk_confidence = EXCLUDED.risk_confidence,
			betting_style = EXCLUDED.betting_style,
			style_confidence = EXCLUDED.style_confidence,
			bet_types = EXCLUDED.bet_types,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
