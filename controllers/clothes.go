package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type CreateClothingIn struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Type      string   `json:"type" validate:"required,oneof=top bottom outerwear shoes accessory dress activewear"`
	Color     string   `json:"color" validate:"required,max=32"`
	ColorName string   `json:"color_name" validate:"omitempty,max=64"`
	Fit       string   `json:"fit" validate:"omitempty,oneof=oversized regular fitted"`
	Material  *string  `json:"material" validate:"omitempty,max=64"`
	Occasions []string `json:"occasions" validate:"omitempty,max=8,dive,occasion"`
	Season    []string `json:"season" validate:"omitempty,max=4,dive,season"`
	Condition string   `json:"condition" validate:"omitempty,oneof=new good worn retired"`
	FileName  *string  `json:"file_name" validate:"omitempty,max=200"`
}

type UpdateClothingIn struct {
	Name      *string  `json:"name" validate:"omitempty,max=100"`
	Type      *string  `json:"type" validate:"omitempty,oneof=top bottom outerwear shoes accessory dress activewear"`
	Color     *string  `json:"color" validate:"omitempty,max=32"`
	ColorName *string  `json:"color_name" validate:"omitempty,max=64"`
	Fit       *string  `json:"fit" validate:"omitempty,oneof=oversized regular fitted"`
	Material  *string  `json:"material" validate:"omitempty,max=64"`
	Occasions []string `json:"occasions" validate:"omitempty,max=8,dive,occasion"`
	Season    []string `json:"season" validate:"omitempty,max=4,dive,season"`
	Condition *string  `json:"condition" validate:"omitempty,oneof=new good worn retired"`
	WearCount *int     `json:"wear_count" validate:"omitempty,min=0"`
}

func (in UpdateClothingIn) toUpdate() models.ClothingItemUpdate {
	update := models.ClothingItemUpdate{
		Name:      in.Name,
		Color:     in.Color,
		ColorName: in.ColorName,
		Material:  in.Material,
		WearCount: in.WearCount,
	}
	if in.Type != nil {
		clothingType := models.ClothingType(*in.Type)
		update.Type = &clothingType
	}
	if in.Fit != nil {
		fit := models.Fit(*in.Fit)
		update.Fit = &fit
	}
	if in.Condition != nil {
		condition := models.Condition(*in.Condition)
		update.Condition = &condition
	}
	if in.Occasions != nil {
		update.Occasions = uniqueStrings(in.Occasions)
	}
	if in.Season != nil {
		update.Season = uniqueStrings(in.Season)
	}
	return update
}

type ClothingResponse struct {
	models.ClothingItem
	Uri *string `json:"uri,omitempty"`
}

type ClothingCreatedResponse struct {
	ClothingResponse ClothingResponse `json:"clothes"`
	FileUploadUrl    string           `json:"file_upload_url,omitempty"`
}

type ClothesListResponse struct {
	Tops        []ClothingResponse `json:"tops"`
	Bottoms     []ClothingResponse `json:"bottoms"`
	Shoes       []ClothingResponse `json:"shoes"`
	Accessories []ClothingResponse `json:"accessories"`
	Others      []ClothingResponse `json:"others"`
}

type ClothesController struct {
	Catalogue  services.CatalogueStore
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
	BucketName string
	IDs        services.IDGenerator
}

func (controller *ClothesController) ClothingRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateClothing)
	g.GET("/list", controller.ListClothes)
	g.GET("/:id", controller.GetClothing)
	g.PATCH("/:id", controller.UpdateClothing)
	g.DELETE("/:id", controller.DeleteClothing)
}

func (controller *ClothesController) newID() string {
	if controller.IDs == nil {
		return services.UUIDGenerator{}.NewID()
	}
	return controller.IDs.NewID()
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}

func (controller *ClothesController) CreateClothing(c echo.Context) error {
	var req CreateClothingIn
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

	item := models.ClothingItem{
		ID:        controller.newID(),
		OwnerID:   user.ID,
		Name:      strings.TrimSpace(req.Name),
		Type:      models.ClothingType(req.Type),
		Color:     req.Color,
		ColorName: req.ColorName,
		Fit:       models.Fit(req.Fit),
		Material:  req.Material,
		Occasions: pq.StringArray(uniqueStrings(req.Occasions)),
		Season:    pq.StringArray(uniqueStrings(req.Season)),
		Condition: models.Condition(req.Condition),
	}
	if item.ColorName == "" {
		item.ColorName = item.Color
	}
	if item.Fit == "" {
		item.Fit = models.FitRegular
	}
	if item.Condition == "" {
		item.Condition = models.ConditionNew
	}

	var uploadUrl string
	if req.FileName != nil && *req.FileName != "" {
		fileName := services.SafeFileName(*req.FileName)
		if fileName == "" || !services.IsAllowedImage(fileName) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Only jpg, png, heic and webp photos are supported"})
		}
		objectKey := fmt.Sprintf("clothes/%v/%s/%s", user.ID, item.ID, fileName)
		url, err := controller.AWSService.PresignPhotoUpload(ctx, controller.BucketName, objectKey)
		switch {
		case errors.Is(err, services.ErrStorageDisabled):
			log.Ctx(ctx).Warn().Str("item_id", item.ID).Msg("photo storage disabled, item saved without image")
		case err != nil:
			log.Ctx(ctx).Error().Err(err).Str("item_id", item.ID).Msg("unable to presign clothing upload")
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating clothe with attachment",
			})
		default:
			uploadUrl = url
			item.ImageURL = objectKey
		}
	}

	if err := controller.Catalogue.AddItem(ctx, &item); err != nil {
		sentry.CaptureException(fmt.Errorf("[User: %v] add clothing item: %w", user.ID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save clothing item"})
	}

	return c.JSON(http.StatusCreated, ClothingCreatedResponse{
		ClothingResponse: ClothingResponse{ClothingItem: item},
		FileUploadUrl:    uploadUrl,
	})
}

// populatePresignedClothingImages resolves read URLs concurrently. When the
// cache itself fails it falls back to presigning directly.
func (controller *ClothesController) populatePresignedClothingImages(ctx context.Context, clothes []models.ClothingItem) []ClothingResponse {
	if len(clothes) == 0 {
		return []ClothingResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]ClothingResponse, len(clothes))
	for i, clothingItem := range clothes {
		wg.Add(1)
		go func(index int, item models.ClothingItem) {
			defer wg.Done()
			processedResponses[index] = ClothingResponse{ClothingItem: item}
			if item.ImageURL == "" {
				return
			}
			objectKey := item.ImageURL

			url, err := controller.URLCache.GetReadURL(ctx, objectKey)
			if err == nil {
				processedResponses[index].Uri = &url
				return
			}
			if errors.Is(err, services.ErrStorageDisabled) {
				return
			}
			log.Ctx(ctx).Warn().Err(err).Str("object_key", objectKey).Msg("url cache failed, presigning directly")
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("failure_type", "cache_system")
				scope.SetExtra("objectKey", objectKey)
				sentry.CaptureException(err)
			})

			fallbackUrl, fallbackErr := controller.AWSService.PresignPhotoRead(ctx, controller.BucketName, objectKey)
			if fallbackErr != nil {
				log.Ctx(ctx).Error().Err(fallbackErr).Str("object_key", objectKey).Msg("direct presign failed too")
				sentry.CaptureException(fallbackErr)
				return
			}
			processedResponses[index].Uri = &fallbackUrl
		}(i, clothingItem)
	}

	wg.Wait()
	return processedResponses
}

func filterClothes(clothes []models.ClothingItem, query string, clothingType string) []models.ClothingItem {
	query = languageutil.Lower(strings.TrimSpace(query))
	if query == "" && clothingType == "" {
		return clothes
	}
	out := make([]models.ClothingItem, 0, len(clothes))
	for _, item := range clothes {
		if clothingType != "" && string(item.Type) != clothingType {
			continue
		}
		if query != "" && !strings.Contains(languageutil.Lower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (controller *ClothesController) ListClothes(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()

	clothes, err := controller.Catalogue.ListItems(ctx, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch clothes"})
	}
	clothes = filterClothes(clothes, c.QueryParam("q"), c.QueryParam("type"))
	processedResponses := controller.populatePresignedClothingImages(ctx, clothes)

	response := ClothesListResponse{
		Tops:        []ClothingResponse{},
		Bottoms:     []ClothingResponse{},
		Shoes:       []ClothingResponse{},
		Accessories: []ClothingResponse{},
		Others:      []ClothingResponse{},
	}
	for _, resp := range processedResponses {
		switch resp.Type {
		case models.ClothingTop, models.ClothingOuterwear:
			response.Tops = append(response.Tops, resp)
		case models.ClothingBottom:
			response.Bottoms = append(response.Bottoms, resp)
		case models.ClothingShoes:
			response.Shoes = append(response.Shoes, resp)
		case models.ClothingAccessory:
			response.Accessories = append(response.Accessories, resp)
		default:
			response.Others = append(response.Others, resp)
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *ClothesController) GetClothing(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	ctx := c.Request().Context()
	item, err := controller.Catalogue.GetItem(ctx, user.ID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing item not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch clothing item"})
	}
	return c.JSON(http.StatusOK, controller.populatePresignedClothingImages(ctx, []models.ClothingItem{*item})[0])
}

func (controller *ClothesController) UpdateClothing(c echo.Context) error {
	var req UpdateClothingIn
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

	item, err := controller.Catalogue.UpdateItem(c.Request().Context(), user.ID, c.Param("id"), req.toUpdate())
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing item not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update clothing item"})
	}
	return c.JSON(http.StatusOK, ClothingResponse{ClothingItem: *item})
}

func (controller *ClothesController) DeleteClothing(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	err := controller.Catalogue.RemoveItem(c.Request().Context(), user.ID, c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Clothing item not found"})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete clothing item"})
	}
	return c.NoContent(http.StatusNoContent)
}
