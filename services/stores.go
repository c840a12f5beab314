package services

import (
	"context"
	"time"

	"wardrobeapi/models"
)

// CatalogueStore holds the clothing items of every user. Items are always
// scoped by owner so one user can never touch another user's wardrobe.
type CatalogueStore interface {
	AddItem(ctx context.Context, item *models.ClothingItem) error
	GetItem(ctx context.Context, ownerID uint, id string) (*models.ClothingItem, error)
	UpdateItem(ctx context.Context, ownerID uint, id string, update models.ClothingItemUpdate) (*models.ClothingItem, error)
	RemoveItem(ctx context.Context, ownerID uint, id string) error
	ListItems(ctx context.Context, ownerID uint) ([]models.ClothingItem, error)
	// RecordWear bumps wear_count and last_worn_at of the given items, unknown ids are ignored.
	RecordWear(ctx context.Context, ownerID uint, ids []string, at time.Time) (int, error)
}

// OutfitHistoryStore keeps accepted outfits keyed by outfit id.
type OutfitHistoryStore interface {
	AppendOutfit(ctx context.Context, outfit models.Outfit) error
	GetOutfit(ctx context.Context, userID uint, id string) (*models.Outfit, error)
	// ListOutfits returns the newest outfits first.
	ListOutfits(ctx context.Context, userID uint) ([]models.Outfit, error)
	RateOutfit(ctx context.Context, userID uint, id string, rating int, liked bool) (*models.Outfit, error)
	MarkWorn(ctx context.Context, userID uint, id string, at time.Time) (*models.Outfit, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.UserAccount) error
	GetUser(ctx context.Context, id uint) (*models.UserAccount, error)
	SaveUser(ctx context.Context, user *models.UserAccount) error
}

type Stores struct {
	Catalogue CatalogueStore
	History   OutfitHistoryStore
	Users     UserStore
}
