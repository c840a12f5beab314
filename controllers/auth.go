package controllers

import (
	"fmt"
	"net/http"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	Users     services.UserStore
	JWTSecret string
}

func (m *AuthController) AuthRoutes(g *echo.Group) {
	g.POST("/onboard", m.Onboard)
}

// Onboard creates the account from the onboarding questionnaire and hands out an access token.
func (m *AuthController) Onboard(c echo.Context) error {
	var req models.OnboardIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	now := time.Now().UTC()
	user := models.UserAccount{
		Name:             req.Name,
		Email:            req.Email,
		BodyType:         models.BodyType(req.BodyType),
		SkinTone:         models.SkinTone(req.SkinTone),
		StylePreferences: pq.StringArray(req.StylePreferences),
		ColorPalette:     pq.StringArray{},
		LastSeenAt:       &now,
	}
	if user.StylePreferences == nil {
		user.StylePreferences = pq.StringArray{}
	}
	ctx := c.Request().Context()
	if err := m.Users.CreateUser(ctx, &user); err != nil {
		sentry.CaptureException(fmt.Errorf("onboard user %s: %w", req.Name, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not create your profile, please try again"})
	}

	token, err := GenerateUserToken(UIntToStr(user.ID), m.JWTSecret)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[User: %v] sign access token: %w", user.ID, err))
		return echo.ErrInternalServerError
	}
	log.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user onboarded")
	return c.JSON(http.StatusCreated, models.OnboardOut{User: user, AccessToken: token})
}
