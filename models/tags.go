package models

import (
	"slices"

	"github.com/go-playground/validator"
)

type ClothingType string

const (
	ClothingTop        ClothingType = "top"
	ClothingBottom     ClothingType = "bottom"
	ClothingOuterwear  ClothingType = "outerwear"
	ClothingShoes      ClothingType = "shoes"
	ClothingAccessory  ClothingType = "accessory"
	ClothingDress      ClothingType = "dress"
	ClothingActivewear ClothingType = "activewear"
)

type Occasion string

const (
	OccasionCasual Occasion = "casual"
	OccasionWork   Occasion = "work"
	OccasionParty  Occasion = "party"
	OccasionDate   Occasion = "date"
	OccasionGym    Occasion = "gym"
	OccasionFormal Occasion = "formal"
	OccasionBeach  Occasion = "beach"
	OccasionTravel Occasion = "travel"
)

var Occasions = []Occasion{
	OccasionCasual, OccasionWork, OccasionParty, OccasionDate,
	OccasionGym, OccasionFormal, OccasionBeach, OccasionTravel,
}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

type Fit string

const (
	FitOversized Fit = "oversized"
	FitRegular   Fit = "regular"
	FitFitted    Fit = "fitted"
)

type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionGood    Condition = "good"
	ConditionWorn    Condition = "worn"
	ConditionRetired Condition = "retired"
)

func (o Occasion) Valid() bool {
	return slices.Contains(Occasions, o)
}

func (s Season) Valid() bool {
	return slices.Contains(Seasons, s)
}

// ValidateOccasion is registered as the "occasion" validation, usable with dive on string slices.
func ValidateOccasion(fl validator.FieldLevel) bool {
	return Occasion(fl.Field().String()).Valid()
}

func ValidateSeason(fl validator.FieldLevel) bool {
	return Season(fl.Field().String()).Valid()
}

func ValidateOccasionRaw(value string) bool {
	return Occasion(value).Valid()
}
