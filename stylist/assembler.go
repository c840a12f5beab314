package stylist

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
	"wardrobeapi/services"
)

var ErrInsufficientWardrobe = errors.New("not enough items in the wardrobe to build an outfit")

const (
	// a preferred item that also fits the occasion wins 90% of the time
	bestThreshold = 0.1
	// a preferred item wins 70% of the time
	preferredThreshold = 0.3
	// accessories are added half of the time unless the hint asked for one
	accessoryThreshold = 0.5

	minOutfitItems = 2
	minMatchScore  = 80
	matchScoreSpan = 20
	minTokenLength = 3
)

var genericExplanations = []string{
	"These pieces play well together and keep the look balanced.",
	"A clean combination that suits the moment without trying too hard.",
	"The colors sit nicely side by side, easy to wear and easy to like.",
	"A dependable mix from your closet that matches the occasion.",
	"Simple, coherent and ready to go. Give it a spin!",
}

type Assembler struct {
	Random RandomSource
	IDs    services.IDGenerator
	Now    func() time.Time
}

func NewAssembler(random RandomSource, ids services.IDGenerator) *Assembler {
	if random == nil {
		random = DefaultSource
	}
	if ids == nil {
		ids = services.UUIDGenerator{}
	}
	return &Assembler{Random: random, IDs: ids, Now: func() time.Time { return time.Now().UTC() }}
}

// GenerateOutfit runs the assembler with the process-wide random source.
func GenerateOutfit(wardrobe []models.ClothingItem, occasion models.Occasion, mood string, hint string) (*models.Outfit, error) {
	return NewAssembler(nil, nil).Generate(wardrobe, occasion, mood, hint)
}

type pools struct {
	tops        []models.ClothingItem
	bottoms     []models.ClothingItem
	shoes       []models.ClothingItem
	accessories []models.ClothingItem
}

// partition sorts items into slot pools. Dresses and activewear fill no slot.
func partition(wardrobe []models.ClothingItem) pools {
	var p pools
	for _, item := range wardrobe {
		switch item.Type {
		case models.ClothingTop, models.ClothingOuterwear:
			p.tops = append(p.tops, item)
		case models.ClothingBottom:
			p.bottoms = append(p.bottoms, item)
		case models.ClothingShoes:
			p.shoes = append(p.shoes, item)
		case models.ClothingAccessory:
			p.accessories = append(p.accessories, item)
		}
	}
	return p
}

// HintTokens lower-cases the hint and keeps whitespace separated tokens of at
// least three UTF-16 code units, so an emoji pair counts as a word.
func HintTokens(hint string) []string {
	if strings.TrimSpace(hint) == "" {
		return nil
	}
	var tokens []string
	for _, token := range strings.Fields(languageutil.Lower(hint)) {
		if len(utf16.Encode([]rune(token))) >= minTokenLength {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// PreferredIDs returns the ids of items whose name, color, color name or type contains a hint token.
func PreferredIDs(wardrobe []models.ClothingItem, hint string) map[string]bool {
	preferred := map[string]bool{}
	tokens := HintTokens(hint)
	if len(tokens) == 0 {
		return preferred
	}
	for _, item := range wardrobe {
		fields := []string{
			languageutil.Lower(item.Name),
			languageutil.Lower(item.Color),
			languageutil.Lower(item.ColorName),
			languageutil.Lower(string(item.Type)),
		}
	tokenLoop:
		for _, token := range tokens {
			for _, field := range fields {
				if strings.Contains(field, token) {
					preferred[item.ID] = true
					break tokenLoop
				}
			}
		}
	}
	return preferred
}

type picker struct {
	random    RandomSource
	occasion  models.Occasion
	preferred map[string]bool
}

func (p picker) uniform(items []models.ClothingItem) models.ClothingItem {
	return items[pickIndex(p.random, len(items))]
}

// pick fills one slot. The tiers fall through in order and each gate takes its own draw.
func (p picker) pick(pool []models.ClothingItem) models.ClothingItem {
	var preferred, occasionMatched, best []models.ClothingItem
	for _, item := range pool {
		isPreferred := p.preferred[item.ID]
		fits := item.HasOccasion(p.occasion)
		if isPreferred {
			preferred = append(preferred, item)
		}
		if fits {
			occasionMatched = append(occasionMatched, item)
		}
		if isPreferred && fits {
			best = append(best, item)
		}
	}

	if len(best) > 0 && p.random.Float64() > bestThreshold {
		return p.uniform(best)
	}
	if len(preferred) > 0 && p.random.Float64() > preferredThreshold {
		return p.uniform(preferred)
	}
	if len(occasionMatched) > 0 {
		return p.uniform(occasionMatched)
	}
	return p.uniform(pool)
}

func (p picker) pickAccessory(accessories []models.ClothingItem) (models.ClothingItem, bool) {
	if len(accessories) == 0 {
		return models.ClothingItem{}, false
	}
	var preferred []models.ClothingItem
	for _, item := range accessories {
		if p.preferred[item.ID] {
			preferred = append(preferred, item)
		}
	}
	// the draw is taken before the preference check, matching the gate order
	if !(p.random.Float64() > accessoryThreshold || len(preferred) > 0) {
		return models.ClothingItem{}, false
	}
	if len(preferred) > 0 {
		return p.uniform(preferred), true
	}
	return p.uniform(accessories), true
}

// Generate assembles one outfit proposal out of the wardrobe snapshot. It
// returns ErrInsufficientWardrobe when fewer than two items could be selected.
func (a *Assembler) Generate(wardrobe []models.ClothingItem, occasion models.Occasion, mood string, hint string) (*models.Outfit, error) {
	if len(wardrobe) < minOutfitItems {
		return nil, ErrInsufficientWardrobe
	}

	slots := partition(wardrobe)
	p := picker{random: a.Random, occasion: occasion, preferred: PreferredIDs(wardrobe, hint)}

	selected := make(models.OutfitItems, 0, 4)
	for _, pool := range [][]models.ClothingItem{slots.tops, slots.bottoms, slots.shoes} {
		if len(pool) > 0 {
			selected = append(selected, p.pick(pool))
		}
	}
	if accessory, ok := p.pickAccessory(slots.accessories); ok {
		selected = append(selected, accessory)
	}

	if len(selected) < minOutfitItems {
		return nil, ErrInsufficientWardrobe
	}

	explanation := a.explain(selected, p.preferred, occasion, hint)
	score := minMatchScore + pickIndex(a.Random, matchScoreSpan)

	return &models.Outfit{
		ID:          a.IDs.NewID(),
		Items:       selected,
		Occasion:    occasion,
		MatchScore:  score,
		Explanation: explanation,
		Mood:        mood,
		CreatedAt:   a.Now(),
	}, nil
}

func (a *Assembler) explain(selected models.OutfitItems, preferred map[string]bool, occasion models.Occasion, hint string) string {
	if strings.TrimSpace(hint) != "" {
		for _, item := range selected {
			if preferred[item.ID] {
				return fmt.Sprintf("Curated this look based on your request: \"%s\". It fits the %s vibe perfectly!", hint, occasion)
			}
		}
	}
	return genericExplanations[pickIndex(a.Random, len(genericExplanations))]
}

// GenericExplanations lists the fallback rationales.
func GenericExplanations() []string {
	out := make([]string, len(genericExplanations))
	copy(out, genericExplanations)
	return out
}
