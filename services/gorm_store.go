package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wardrobeapi/models"

	"gorm.io/gorm"
)

// GormCatalogueStore persists clothing items in postgres.
type GormCatalogueStore struct {
	DB *gorm.DB
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormCatalogueStore) AddItem(ctx context.Context, item *models.ClothingItem) error {
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create clothing item: %w", err)
	}
	return nil
}

func (s *GormCatalogueStore) GetItem(ctx context.Context, ownerID uint, id string) (*models.ClothingItem, error) {
	var item models.ClothingItem
	err := s.DB.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Take(&item).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &item, nil
}

func (s *GormCatalogueStore) UpdateItem(ctx context.Context, ownerID uint, id string, update models.ClothingItemUpdate) (*models.ClothingItem, error) {
	var item models.ClothingItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND id = ?", ownerID, id).Take(&item).Error; err != nil {
			return err
		}
		update.Apply(&item)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &item, nil
}

func (s *GormCatalogueStore) RemoveItem(ctx context.Context, ownerID uint, id string) error {
	result := s.DB.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&models.ClothingItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCatalogueStore) ListItems(ctx context.Context, ownerID uint) ([]models.ClothingItem, error) {
	items := []models.ClothingItem{}
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormCatalogueStore) RecordWear(ctx context.Context, ownerID uint, ids []string, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.DB.WithContext(ctx).Model(&models.ClothingItem{}).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Updates(map[string]interface{}{
			"wear_count":   gorm.Expr("wear_count + 1"),
			"last_worn_at": at,
		})
	return int(result.RowsAffected), result.Error
}

// GormHistoryStore persists accepted outfits.
type GormHistoryStore struct {
	DB *gorm.DB
}

func (s *GormHistoryStore) AppendOutfit(ctx context.Context, outfit models.Outfit) error {
	if err := s.DB.WithContext(ctx).Create(&outfit).Error; err != nil {
		return fmt.Errorf("save outfit %s: %w", outfit.ID, err)
	}
	return nil
}

func (s *GormHistoryStore) GetOutfit(ctx context.Context, userID uint, id string) (*models.Outfit, error) {
	var outfit models.Outfit
	if err := s.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Take(&outfit).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &outfit, nil
}

func (s *GormHistoryStore) ListOutfits(ctx context.Context, userID uint) ([]models.Outfit, error) {
	outfits := []models.Outfit{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&outfits).Error; err != nil {
		return nil, err
	}
	return outfits, nil
}

func (s *GormHistoryStore) updateOutfit(ctx context.Context, userID uint, id string, values map[string]interface{}) (*models.Outfit, error) {
	result := s.DB.WithContext(ctx).Model(&models.Outfit{}).Where("user_id = ? AND id = ?", userID, id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetOutfit(ctx, userID, id)
}

func (s *GormHistoryStore) RateOutfit(ctx context.Context, userID uint, id string, rating int, liked bool) (*models.Outfit, error) {
	return s.updateOutfit(ctx, userID, id, map[string]interface{}{"rating": rating, "liked": liked})
}

func (s *GormHistoryStore) MarkWorn(ctx context.Context, userID uint, id string, at time.Time) (*models.Outfit, error) {
	return s.updateOutfit(ctx, userID, id, map[string]interface{}{"worn_at": at})
}

type GormUserStore struct {
	DB *gorm.DB
}

func (s *GormUserStore) CreateUser(ctx context.Context, user *models.UserAccount) error {
	return s.DB.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) GetUser(ctx context.Context, id uint) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := s.DB.WithContext(ctx).Take(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *GormUserStore) SaveUser(ctx context.Context, user *models.UserAccount) error {
	return s.DB.WithContext(ctx).Save(user).Error
}

func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Catalogue: &GormCatalogueStore{DB: db},
		History:   &GormHistoryStore{DB: db},
		Users:     &GormUserStore{DB: db},
	}
}
