package models

import (
	"time"

	"github.com/lib/pq"
)

type BodyType string

const (
	BodySlim     BodyType = "slim"
	BodyAthletic BodyType = "athletic"
	BodyAverage  BodyType = "average"
	BodyMuscular BodyType = "muscular"
	BodyCurvy    BodyType = "curvy"
)

type SkinTone string

const (
	SkinFair   SkinTone = "fair"
	SkinLight  SkinTone = "light"
	SkinMedium SkinTone = "medium"
	SkinOlive  SkinTone = "olive"
	SkinTan    SkinTone = "tan"
	SkinDark   SkinTone = "dark"
)

type UserAccount struct {
	JsonModel
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Banned   bool     `gorm:"default:false" json:"-"`
	BodyType BodyType `json:"body_type"`
	SkinTone SkinTone `json:"skin_tone"`
	// oversized, streetwear, formal, minimal, sporty, vintage, bohemian, preppy
	StylePreferences pq.StringArray `gorm:"type:text[]" json:"style_preferences"`
	ColorPalette     pq.StringArray `gorm:"type:text[]" json:"color_palette"`
	LastSeenAt       *time.Time     `json:"-"`
}
