package services

import (
	"context"
	"testing"
	"time"

	"wardrobeapi/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id string, ownerID uint, name string) *models.ClothingItem {
	return &models.ClothingItem{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Type:      models.ClothingTop,
		Color:     "#ffffff",
		ColorName: "white",
		Occasions: pq.StringArray{"casual"},
		Season:    pq.StringArray{},
	}
}

func TestMemoryCatalogueStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCatalogueStore()

	require.NoError(t, store.AddItem(ctx, newItem("a", 1, "Tee")))
	require.NoError(t, store.AddItem(ctx, newItem("b", 1, "Shirt")))
	require.NoError(t, store.AddItem(ctx, newItem("c", 2, "Hoodie")))
	assert.Error(t, store.AddItem(ctx, newItem("a", 1, "Duplicate")))
	assert.Error(t, store.AddItem(ctx, newItem("", 1, "No id")))

	items, err := store.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	items[0].Occasions[0] = "gym"
	stored, err := store.GetItem(ctx, 1, "a")
	require.NoError(t, err)
	assert.Equal(t, "casual", stored.Occasions[0], "listing returns copies")

	_, err = store.GetItem(ctx, 2, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	name := "Vintage Tee"
	updated, err := store.UpdateItem(ctx, 1, "a", models.ClothingItemUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Vintage Tee", updated.Name)
	assert.Equal(t, "a", updated.ID)
	_, err = store.UpdateItem(ctx, 2, "a", models.ClothingItemUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.RemoveItem(ctx, 1, "b"))
	assert.ErrorIs(t, store.RemoveItem(ctx, 1, "b"), ErrNotFound)
	items, err = store.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	empty, err := store.ListItems(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryCatalogueRecordWear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCatalogueStore()
	require.NoError(t, store.AddItem(ctx, newItem("a", 1, "Tee")))
	require.NoError(t, store.AddItem(ctx, newItem("b", 1, "Jeans")))

	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	updated, err := store.RecordWear(ctx, 1, []string{"a", "b", "gone"}, at)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	item, err := store.GetItem(ctx, 1, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, item.WearCount)
	assert.Equal(t, at, *item.LastWornAt)

	updated, err = store.RecordWear(ctx, 2, []string{"a"}, at)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestMemoryHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "middle"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		require.NoError(t, store.AppendOutfit(ctx, models.Outfit{
			ID:        id,
			UserID:    1,
			Items:     models.OutfitItems{*newItem("a", 1, "Tee")},
			CreatedAt: base.Add(offsets[i]),
		}))
	}
	require.NoError(t, store.AppendOutfit(ctx, models.Outfit{ID: "foreign", UserID: 2, CreatedAt: base}))
	assert.Error(t, store.AppendOutfit(ctx, models.Outfit{ID: "old", UserID: 1}))

	outfits, err := store.ListOutfits(ctx, 1)
	require.NoError(t, err)
	require.Len(t, outfits, 3)
	assert.Equal(t, []string{"new", "middle", "old"}, []string{outfits[0].ID, outfits[1].ID, outfits[2].ID})

	_, err = store.GetOutfit(ctx, 1, "foreign")
	assert.ErrorIs(t, err, ErrNotFound)

	rated, err := store.RateOutfit(ctx, 1, "old", 4, false)
	require.NoError(t, err)
	assert.Equal(t, 4, *rated.Rating)
	assert.False(t, *rated.Liked)
	_, err = store.RateOutfit(ctx, 2, "old", 4, false)
	assert.ErrorIs(t, err, ErrNotFound)

	at := base.Add(48 * time.Hour)
	wornOutfit, err := store.MarkWorn(ctx, 1, "middle", at)
	require.NoError(t, err)
	assert.Equal(t, at, *wornOutfit.WornAt)

	*rated.Rating = 1
	again, err := store.GetOutfit(ctx, 1, "old")
	require.NoError(t, err)
	assert.Equal(t, 4, *again.Rating, "returned outfits are copies")
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	first := &models.UserAccount{Name: "A"}
	second := &models.UserAccount{Name: "B"}
	require.NoError(t, store.CreateUser(ctx, first))
	require.NoError(t, store.CreateUser(ctx, second))
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	first.Name = "Renamed"
	require.NoError(t, store.SaveUser(ctx, first))
	stored, err := store.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)

	_, err = store.GetUser(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.SaveUser(ctx, &models.UserAccount{JsonModel: models.JsonModel{ID: 9}}), ErrNotFound)
}
