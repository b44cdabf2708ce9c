package service

import (
	"context"
	"errors"
	"time"

	"pitchside/internal/extract"
	"pitchside/internal/models"
	"pitchside/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService owns the merge of freshly extracted preferences into the
// persisted user profile.
type ProfileService struct {
	profileRepo    *repository.ProfileRepository
	mergeThreshold float64
	logger         *zap.Logger
}

func NewProfileService(profileRepo *repository.ProfileRepository, mergeThreshold float64, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo:    profileRepo,
		mergeThreshold: mergeThreshold,
		logger:         logger,
	}
}

// Get returns the stored profile, or a fresh default one for first-time users.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return models.NewUserProfile(userID), nil
		}
		return nil, err
	}
	return profile, nil
}

// Merge folds an extraction result into the profile and persists the result
// when anything changed. Team and league sets only grow; risk tolerance and
// betting style are replaced only by detections confident enough to trust.
func (s *ProfileService) Merge(ctx context.Context, profile *models.UserProfile, result extract.Result) (*models.UserProfile, error) {
	if !mergeInto(profile, result, s.mergeThreshold) {
		return profile, nil
	}

	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		// Hand the merged profile back anyway so the caller can keep
		// serving the request with the fresh preferences.
		return profile, err
	}

	s.logger.Debug("profile updated",
		zap.String("user_id", profile.UserID.String()),
		zap.Int("teams", len(profile.FavoriteTeams)),
		zap.Int("leagues", len(profile.FavoriteLeagues)),
		zap.String("risk", string(profile.RiskTolerance)),
	)

	return profile, nil
}

// Update applies an explicit preference edit from the API, bypassing the
// confidence threshold since the user stated it directly.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, teams, leagues []string, risk, style string) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, team := range teams {
		if !profile.HasTeam(team) {
			profile.FavoriteTeams = append(profile.FavoriteTeams, team)
		}
	}
	for _, league := range leagues {
		if !profile.HasLeague(league) {
			profile.FavoriteLeagues = append(profile.FavoriteLeagues, league)
		}
	}
	if risk != "" {
		profile.RiskTolerance = models.ParseRiskTolerance(risk)
		profile.RiskConfidence = 1.0
	}
	if style != "" {
		profile.BettingStyle = style
		profile.StyleConfidence = 1.0
	}

	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// mergeInto applies one extraction result to the profile in place and reports
// whether anything changed.
func mergeInto(profile *models.UserProfile, result extract.Result, threshold float64) bool {
	if result.Empty() {
		return false
	}

	changed := false

	for _, team := range result.Teams {
		if !profile.HasTeam(team.Name) {
			profile.FavoriteTeams = append(profile.FavoriteTeams, team.Name)
			changed = true
		}
	}
	for _, league := range result.Leagues {
		if !profile.HasLeague(league.Name) {
			profile.FavoriteLeagues = append(profile.FavoriteLeagues, league.Name)
			changed = true
		}
	}

	if result.Risk != models.RiskUnknown && result.RiskConfidence >= threshold {
		if result.Risk != profile.RiskTolerance || result.RiskConfidence != profile.RiskConfidence {
			profile.RiskTolerance = result.Risk
			profile.RiskConfidence = result.RiskConfidence
			changed = true
		}
	}

	if result.Style != "" && result.StyleConfidence >= threshold {
		if result.Style != profile.BettingStyle || result.StyleConfidence != profile.StyleConfidence {
			profile.BettingStyle = result.Style
			profile.StyleConfidence = result.StyleConfidence
			changed = true
		}
	}

	for _, betType := range result.BetTypes {
		if !containsString(profile.BetTypes, betType) {
			profile.BetTypes = append(profile.BetTypes, betType)
			changed = true
		}
	}

	return changed
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
