package controllers

import (
	"net/http"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
)

type ProfileController struct {
	Users services.UserStore
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("", controller.GetProfile)
	g.PATCH("", controller.UpdateProfile)
}

func (controller *ProfileController) GetProfile(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, user)
}

func (controller *ProfileController) UpdateProfile(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	var req models.ProfileUpdateIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.BodyType != nil {
		user.BodyType = models.BodyType(*req.BodyType)
	}
	if req.SkinTone != nil {
		user.SkinTone = models.SkinTone(*req.SkinTone)
	}
	if req.StylePreferences != nil {
		user.StylePreferences = pq.StringArray(req.StylePreferences)
	}
	if req.ColorPalette != nil {
		user.ColorPalette = pq.StringArray(req.ColorPalette)
	}

	if err := controller.Users.SaveUser(c.Request().Context(), &user); err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}
	return c.JSON(http.StatusOK, user)
}
