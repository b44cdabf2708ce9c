package handlers

import (
	"time"

	"pitchside/internal/dto"
	"pitchside/internal/models"
	"pitchside/internal/service"
	"pitchside/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PreferenceHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewPreferenceHandler(profileService *service.ProfileService, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetPreferences godoc
// @Summary Get the caller's betting preferences
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PreferencesResponse
// @Router /api/v1/preferences [get]
func (h *PreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		h.logger.Error("Get preferences failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load preferences",
		})
	}

	return c.JSON(preferencesResponse(profile))
}

// UpdatePreferences godoc
// @Summary Update the caller's betting preferences
// @Description Explicit preference edits bypass the extraction confidence threshold
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePreferencesRequest true "Preference changes"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/preferences [put]
func (h *PreferenceHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	var req dto.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validation.ValidateRequest(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	profile, err := h.profileService.Update(c.Context(), userID,
		req.FavoriteTeams, req.FavoriteLeagues, req.RiskTolerance, req.BettingStyle)
	if err != nil {
		h.logger.Error("Update preferences failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update preferences",
		})
	}

	return c.JSON(preferencesResponse(profile))
}

func preferencesResponse(profile *models.UserProfile) dto.PreferencesResponse {
	return dto.PreferencesResponse{
		FavoriteTeams:   profile.FavoriteTeams,
		FavoriteLeagues: profile.FavoriteLeagues,
		RiskTolerance:   string(profile.RiskTolerance),
		RiskConfidence:  profile.RiskConfidence,
		BettingStyle:    profile.BettingStyle,
		StyleConfidence: profile.StyleConfidence,
		BetTypes:        profile.BetTypes,
		UpdatedAt:       profile.UpdatedAt.Format(time.RFC3339),
	}
}
