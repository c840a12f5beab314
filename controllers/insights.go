package controllers

import (
	"net/http"

	"wardrobeapi/services"
	"wardrobeapi/stylist"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type InsightsController struct {
	Stores services.Stores
}

func (controller *InsightsController) GetInsights(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()
	wardrobe, err := controller.Stores.Catalogue.ListItems(ctx, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load your wardrobe"})
	}
	outfits, err := controller.Stores.History.ListOutfits(ctx, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load your outfits"})
	}
	return c.JSON(http.StatusOK, stylist.ComputeInsights(wardrobe, len(outfits)))
}
