package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"
	"wardrobeapi/stylist"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const insufficientWardrobeCode = "insufficient_wardrobe"

type GenerateOutfitIn struct {
	Occasion string `json:"occasion" validate:"required,occasion"`
	Mood     string `json:"mood" validate:"required,max=32"`
	Hint     string `json:"hint" validate:"omitempty,max=200"`
}

type RateOutfitIn struct {
	Rating int   `json:"rating" validate:"required,min=1,max=5"`
	Liked  *bool `json:"liked" validate:"required"`
}

type OutfitProposalOut struct {
	Outfit  models.Outfit   `json:"outfit"`
	Request stylist.Request `json:"request"`
}

type LikeOutfitOut struct {
	Saved models.Outfit      `json:"saved"`
	Next  *OutfitProposalOut `json:"next"`
	Code  string             `json:"code,omitempty"`
}

type WornOutfitOut struct {
	OutfitID string `json:"outfit_id"`
	TaskID   string `json:"task_id"`
}

type OutfitsController struct {
	Stores      services.Stores
	Proposals   services.ProposalCache
	Assembler   *stylist.Assembler
	AsynqClient tasks.Enqueuer
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfit)
	g.POST("/:id/reroll", controller.RerollOutfit)
	g.POST("/:id/dislike", controller.DislikeOutfit)
	g.POST("/:id/like", controller.LikeOutfit)
	g.GET("/history", controller.ListHistory)
	g.GET("/history/:id", controller.GetHistoryOutfit)
	g.PUT("/history/:id/rating", controller.RateOutfit)
	g.POST("/history/:id/worn", controller.MarkWorn)
}

func insufficientWardrobe(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]string{
		"error": "Add more items to your wardrobe to get outfit suggestions",
		"code":  insufficientWardrobeCode,
	})
}

func (controller *OutfitsController) remember(ctx context.Context, userID uint, request stylist.Request, outfit *models.Outfit) (*OutfitProposalOut, error) {
	err := controller.Proposals.Put(ctx, services.Proposal{
		UserID:   userID,
		Occasion: request.Occasion,
		Mood:     request.Mood,
		Hint:     request.Hint,
		Outfit:   *outfit,
	})
	if err != nil {
		return nil, err
	}
	return &OutfitProposalOut{Outfit: *outfit, Request: request}, nil
}

func (controller *OutfitsController) GenerateOutfit(c echo.Context) error {
	var req GenerateOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
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

	request := stylist.Request{Occasion: models.Occasion(req.Occasion), Mood: req.Mood, Hint: req.Hint}
	session := stylist.NewSession(controller.Assembler, controller.Stores.History, user.ID)
	session.Configure(request)
	outfit, err := session.Generate(wardrobe)
	if errors.Is(err, stylist.ErrInsufficientWardrobe) {
		return insufficientWardrobe(c)
	}
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	out, err := controller.remember(ctx, user.ID, request, outfit)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[User: %v] cache proposal: %w", user.ID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not prepare your outfit, please try again"})
	}
	log.Ctx(ctx).Info().Str("outfit_id", outfit.ID).Int("items", len(outfit.Items)).Msg("outfit proposed")
	return c.JSON(http.StatusCreated, out)
}

// resume loads the cached proposal and the fresh wardrobe a follow-up action works on.
func (controller *OutfitsController) resume(c echo.Context, user models.UserAccount) (*stylist.Session, []models.ClothingItem, error) {
	ctx := c.Request().Context()
	proposal, err := controller.Proposals.Get(ctx, user.ID, c.Param("id"))
	if err != nil {
		return nil, nil, err
	}
	wardrobe, err := controller.Stores.Catalogue.ListItems(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	request := stylist.Request{Occasion: proposal.Occasion, Mood: proposal.Mood, Hint: proposal.Hint}
	outfit := proposal.Outfit
	return stylist.Resume(controller.Assembler, controller.Stores.History, user.ID, request, &outfit), wardrobe, nil
}

func (controller *OutfitsController) nextProposal(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()
	session, wardrobe, err := controller.resume(c, user)
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "This outfit suggestion has expired, please generate a new one"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	outfit, err := session.Reroll(wardrobe)
	if errors.Is(err, stylist.ErrInsufficientWardrobe) {
		return insufficientWardrobe(c)
	}
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	// the previous proposal stays valid until the next one is cached
	out, err := controller.remember(ctx, user.ID, session.Request(), outfit)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not prepare your outfit, please try again"})
	}
	if err := controller.Proposals.Drop(ctx, c.Param("id")); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("outfit_id", c.Param("id")).Msg("failed to drop previous proposal")
	}
	return c.JSON(http.StatusCreated, out)
}

func (controller *OutfitsController) RerollOutfit(c echo.Context) error {
	return controller.nextProposal(c)
}

func (controller *OutfitsController) DislikeOutfit(c echo.Context) error {
	return controller.nextProposal(c)
}

// LikeOutfit saves the proposal and answers with the next one. A wardrobe
// that can no longer produce an outfit still saves the liked one.
func (controller *OutfitsController) LikeOutfit(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()
	session, wardrobe, err := controller.resume(c, user)
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "This outfit suggestion has expired, please generate a new one"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	saved, next, err := session.Like(ctx, wardrobe)
	if saved == nil {
		sentry.CaptureException(fmt.Errorf("[User: %v] like outfit: %w", user.ID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not save your outfit, please try again"})
	}
	if err := controller.Proposals.Drop(ctx, saved.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("outfit_id", saved.ID).Msg("failed to drop liked proposal")
	}
	log.Ctx(ctx).Info().Str("outfit_id", saved.ID).Msg("outfit liked and saved")

	response := LikeOutfitOut{Saved: *saved}
	switch {
	case errors.Is(err, stylist.ErrInsufficientWardrobe):
		response.Code = insufficientWardrobeCode
	case err != nil:
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	default:
		response.Next, err = controller.remember(ctx, user.ID, session.Request(), next)
		if err != nil {
			sentry.CaptureException(err)
			log.Ctx(ctx).Error().Err(err).Msg("failed to cache next proposal")
		}
	}
	return c.JSON(http.StatusCreated, response)
}

func (controller *OutfitsController) ListHistory(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	outfits, err := controller.Stores.History.ListOutfits(c.Request().Context(), user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch your outfits"})
	}
	return c.JSON(http.StatusOK, outfits)
}

func (controller *OutfitsController) GetHistoryOutfit(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	outfit, err := controller.Stores.History.GetOutfit(c.Request().Context(), user.ID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch outfit"})
	}
	return c.JSON(http.StatusOK, outfit)
}

func (controller *OutfitsController) RateOutfit(c echo.Context) error {
	var req RateOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	outfit, err := controller.Stores.History.RateOutfit(c.Request().Context(), user.ID, c.Param("id"), req.Rating, *req.Liked)
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to rate outfit"})
	}
	return c.JSON(http.StatusOK, outfit)
}

func (controller *OutfitsController) MarkWorn(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()
	outfitID := c.Param("id")
	if _, err := controller.Stores.History.GetOutfit(ctx, user.ID, outfitID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
		}
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	if controller.AsynqClient == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	info, err := tasks.EnqueueOutfitWorn(controller.AsynqClient, user.ID, outfitID, time.Now().UTC())
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Outfit: %s] enqueue worn task: %w", outfitID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not record your outfit, please try again"})
	}
	log.Ctx(ctx).Info().Str("outfit_id", outfitID).Str("task_id", info.ID).Msg("[Queue] outfit worn task submitted")
	return c.JSON(http.StatusAccepted, WornOutfitOut{OutfitID: outfitID, TaskID: info.ID})
}
