package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/lib/pq"
)

type ClothingItem struct {
	ID         string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID    uint           `gorm:"index" json:"-"`
	Name       string         `json:"name"`
	Type       ClothingType   `gorm:"index" json:"type"`
	Color      string         `json:"color"`
	ColorName  string         `json:"color_name"`
	Fit        Fit            `json:"fit"`
	Material   *string        `json:"material,omitempty"`
	Occasions  pq.StringArray `gorm:"type:text[]" json:"occasions"`
	Season     pq.StringArray `gorm:"type:text[]" json:"season"`
	Condition  Condition      `json:"condition"`
	ImageURL   string         `json:"image_url"`
	LastWornAt *time.Time     `json:"last_worn_at,omitempty"`
	WearCount  int            `gorm:"default:0" json:"wear_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (item ClothingItem) HasOccasion(occasion Occasion) bool {
	return slices.Contains(item.Occasions, string(occasion))
}

// ClothingItemUpdate is a partial update, nil fields are left untouched.
type ClothingItemUpdate struct {
	Name      *string
	Type      *ClothingType
	Color     *string
	ColorName *string
	Fit       *Fit
	Material  *string
	Occasions []string
	Season    []string
	Condition *Condition
	ImageURL  *string
	WearCount *int
}

func (u ClothingItemUpdate) Apply(item *ClothingItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Type != nil {
		item.Type = *u.Type
	}
	if u.Color != nil {
		item.Color = *u.Color
	}
	if u.ColorName != nil {
		item.ColorName = *u.ColorName
	}
	if u.Fit != nil {
		item.Fit = *u.Fit
	}
	if u.Material != nil {
		item.Material = u.Material
	}
	if u.Occasions != nil {
		item.Occasions = pq.StringArray(slices.Clone(u.Occasions))
	}
	if u.Season != nil {
		item.Season = pq.StringArray(slices.Clone(u.Season))
	}
	if u.Condition != nil {
		item.Condition = *u.Condition
	}
	if u.ImageURL != nil {
		item.ImageURL = *u.ImageURL
	}
	if u.WearCount != nil {
		item.WearCount = *u.WearCount
	}
}

// OutfitItems is a snapshot of the selected clothes, kept as jsonb so saved
// outfits survive later edits of the catalogue.
type OutfitItems []ClothingItem

func (items OutfitItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OutfitItems) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*items = OutfitItems{}
		return nil
	default:
		return fmt.Errorf("unsupported outfit items type %T", value)
	}
	return json.Unmarshal(raw, items)
}

func (items OutfitItems) IDs() []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

type Outfit struct {
	ID          string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      uint        `gorm:"index" json:"user_id"`
	Items       OutfitItems `gorm:"type:jsonb" json:"items"`
	Occasion    Occasion    `json:"occasion"`
	MatchScore  int         `json:"match_score"`
	Explanation string      `gorm:"type:text" json:"explanation"`
	Mood        string      `json:"mood"`
	Liked       *bool       `json:"liked,omitempty"`
	Rating      *int        `json:"rating,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	WornAt      *time.Time  `json:"worn_at,omitempty"`
}
