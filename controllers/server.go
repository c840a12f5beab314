package controllers

import (
	"net/http"

	"wardrobeapi/models"
	"wardrobeapi/services"
	"wardrobeapi/stylist"
	"wardrobeapi/tasks"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("occasion", models.ValidateOccasion)
	v.RegisterValidation("season", models.ValidateSeason)
	return &CustomValidator{validator: v}
}

type Settings struct {
	JWTSecret  string
	BucketName string
}

func SetupServer(
	stores services.Stores,
	awsService services.AWSServiceProvider,
	urlCache services.URLCacheServiceProvider,
	proposals services.ProposalCache,
	asynqClient tasks.Enqueuer,
	assembler *stylist.Assembler,
	settings Settings,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authController := AuthController{Users: stores.Users, JWTSecret: settings.JWTSecret}
	authController.AuthRoutes(e.Group("/auth"))

	wardrobeGroup := e.Group("/wardrobe", JWTMiddleware(settings.JWTSecret), UserMiddleware(stores.Users))

	profileController := ProfileController{Users: stores.Users}
	profileController.ProfileRoutes(wardrobeGroup.Group("/profile"))

	clothesController := ClothesController{
		Catalogue:  stores.Catalogue,
		AWSService: awsService,
		URLCache:   urlCache,
		BucketName: settings.BucketName,
	}
	clothesController.ClothingRoutes(wardrobeGroup.Group("/clothes"))

	outfitsController := OutfitsController{
		Stores:      stores,
		Proposals:   proposals,
		Assembler:   assembler,
		AsynqClient: asynqClient,
	}
	outfitsController.OutfitRoutes(wardrobeGroup.Group("/outfits"))

	insightsController := InsightsController{Stores: stores}
	wardrobeGroup.GET("/insights", insightsController.GetInsights)

	return e
}
