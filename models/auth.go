package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OnboardIn struct {
	Name             string   `json:"name" validate:"required,max=100"`
	Email            string   `json:"email" validate:"omitempty,email"`
	BodyType         string   `json:"body_type" validate:"required,oneof=slim athletic average muscular curvy"`
	SkinTone         string   `json:"skin_tone" validate:"required,oneof=fair light medium olive tan dark"`
	StylePreferences []string `json:"style_preferences" validate:"omitempty,dive,oneof=oversized streetwear formal minimal sporty vintage bohemian preppy"`
}

type ProfileUpdateIn struct {
	Name             *string  `json:"name" validate:"omitempty,max=100"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	BodyType         *string  `json:"body_type" validate:"omitempty,oneof=slim athletic average muscular curvy"`
	SkinTone         *string  `json:"skin_tone" validate:"omitempty,oneof=fair light medium olive tan dark"`
	StylePreferences []string `json:"style_preferences" validate:"omitempty,dive,oneof=oversized streetwear formal minimal sporty vintage bohemian preppy"`
	ColorPalette     []string `json:"color_palette" validate:"omitempty,max=12,dive,max=32"`
}

type OnboardOut struct {
	User        UserAccount `json:"user"`
	AccessToken string      `json:"access_token"`
}
