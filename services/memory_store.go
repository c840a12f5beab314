package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"wardrobeapi/models"

	"github.com/rs/zerolog/log"
)

// MemoryCatalogueStore is an in-memory CatalogueStore. It keeps insertion
// order per owner so listing matches the order items were added.
type MemoryCatalogueStore struct {
	mu    sync.RWMutex
	items map[uint][]models.ClothingItem
}

func NewMemoryCatalogueStore() *MemoryCatalogueStore {
	return &MemoryCatalogueStore{items: make(map[uint][]models.ClothingItem)}
}

func copyItem(item models.ClothingItem) models.ClothingItem {
	out := item
	out.Occasions = slices.Clone(item.Occasions)
	out.Season = slices.Clone(item.Season)
	if item.Material != nil {
		material := *item.Material
		out.Material = &material
	}
	if item.LastWornAt != nil {
		at := *item.LastWornAt
		out.LastWornAt = &at
	}
	return out
}

func (s *MemoryCatalogueStore) indexOf(ownerID uint, id string) int {
	for i, item := range s.items[ownerID] {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryCatalogueStore) AddItem(ctx context.Context, item *models.ClothingItem) error {
	if item.ID == "" {
		return errors.New("clothing item id is required")
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(item.OwnerID, item.ID) >= 0 {
		return errors.New("clothing item already exists")
	}
	s.items[item.OwnerID] = append(s.items[item.OwnerID], copyItem(*item))
	log.Ctx(ctx).Debug().Str("item_id", item.ID).Uint("owner_id", item.OwnerID).Msg("clothing item added to memory")
	return nil
}

func (s *MemoryCatalogueStore) GetItem(ctx context.Context, ownerID uint, id string) (*models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := copyItem(s.items[ownerID][i])
	return &item, nil
}

func (s *MemoryCatalogueStore) UpdateItem(ctx context.Context, ownerID uint, id string, update models.ClothingItemUpdate) (*models.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := copyItem(s.items[ownerID][i])
	update.Apply(&item)
	item.UpdatedAt = time.Now().UTC()
	s.items[ownerID][i] = item
	out := copyItem(item)
	return &out, nil
}

func (s *MemoryCatalogueStore) RemoveItem(ctx context.Context, ownerID uint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(ownerID, id)
	if i < 0 {
		return ErrNotFound
	}
	s.items[ownerID] = slices.Delete(s.items[ownerID], i, i+1)
	return nil
}

func (s *MemoryCatalogueStore) ListItems(ctx context.Context, ownerID uint) ([]models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClothingItem, 0, len(s.items[ownerID]))
	for _, item := range s.items[ownerID] {
		out = append(out, copyItem(item))
	}
	return out, nil
}

func (s *MemoryCatalogueStore) RecordWear(ctx context.Context, ownerID uint, ids []string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for _, id := range ids {
		i := s.indexOf(ownerID, id)
		if i < 0 {
			continue
		}
		wornAt := at
		s.items[ownerID][i].WearCount++
		s.items[ownerID][i].LastWornAt = &wornAt
		updated++
	}
	return updated, nil
}

// MemoryHistoryStore is an in-memory OutfitHistoryStore.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	outfits map[string]models.Outfit
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{outfits: make(map[string]models.Outfit)}
}

func copyOutfit(outfit models.Outfit) models.Outfit {
	out := outfit
	out.Items = make(models.OutfitItems, 0, len(outfit.Items))
	for _, item := range outfit.Items {
		out.Items = append(out.Items, copyItem(item))
	}
	if outfit.Liked != nil {
		liked := *outfit.Liked
		out.Liked = &liked
	}
	if outfit.Rating != nil {
		rating := *outfit.Rating
		out.Rating = &rating
	}
	if outfit.WornAt != nil {
		at := *outfit.WornAt
		out.WornAt = &at
	}
	return out
}

func (s *MemoryHistoryStore) AppendOutfit(ctx context.Context, outfit models.Outfit) error {
	if outfit.ID == "" {
		return errors.New("outfit id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.outfits[outfit.ID]; ok {
		return errors.New("outfit already saved")
	}
	s.outfits[outfit.ID] = copyOutfit(outfit)
	log.Ctx(ctx).Debug().Str("outfit_id", outfit.ID).Uint("user_id", outfit.UserID).Msg("outfit appended to history")
	return nil
}

func (s *MemoryHistoryStore) GetOutfit(ctx context.Context, userID uint, id string) (*models.Outfit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	outfit, ok := s.outfits[id]
	if !ok || outfit.UserID != userID {
		return nil, ErrNotFound
	}
	out := copyOutfit(outfit)
	return &out, nil
}

func (s *MemoryHistoryStore) ListOutfits(ctx context.Context, userID uint) ([]models.Outfit, error) {
	s.mu.RLock()
	out := []models.Outfit{}
	for _, outfit := range s.outfits {
		if outfit.UserID == userID {
			out = append(out, copyOutfit(outfit))
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryHistoryStore) update(userID uint, id string, fn func(outfit *models.Outfit)) (*models.Outfit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outfit, ok := s.outfits[id]
	if !ok || outfit.UserID != userID {
		return nil, ErrNotFound
	}
	fn(&outfit)
	s.outfits[id] = outfit
	out := copyOutfit(outfit)
	return &out, nil
}

func (s *MemoryHistoryStore) RateOutfit(ctx context.Context, userID uint, id string, rating int, liked bool) (*models.Outfit, error) {
	return s.update(userID, id, func(outfit *models.Outfit) {
		outfit.Rating = &rating
		outfit.Liked = &liked
	})
}

func (s *MemoryHistoryStore) MarkWorn(ctx context.Context, userID uint, id string, at time.Time) (*models.Outfit, error) {
	return s.update(userID, id, func(outfit *models.Outfit) {
		outfit.WornAt = &at
	})
}

// MemoryUserStore is an in-memory UserStore with sequential ids.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.UserAccount
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uint]models.UserAccount)}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, user *models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := time.Now().UTC()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) GetUser(ctx context.Context, id uint) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.StylePreferences = slices.Clone(user.StylePreferences)
	user.ColorPalette = slices.Clone(user.ColorPalette)
	return &user, nil
}

func (s *MemoryUserStore) SaveUser(ctx context.Context, user *models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func NewMemoryStores() Stores {
	return Stores{
		Catalogue: NewMemoryCatalogueStore(),
		History:   NewMemoryHistoryStore(),
		Users:     NewMemoryUserStore(),
	}
}
