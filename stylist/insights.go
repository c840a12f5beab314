package stylist

import (
	"fmt"
	"math"
	"sort"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
)

const (
	topColorsLimit  = 5
	topTypesLimit   = 4
	smallWardrobe   = 5
	fallbackPalette = "neutral"
)

type Count struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Insights struct {
	TotalItems           int                  `json:"total_items"`
	SavedOutfits         int                  `json:"saved_outfits"`
	DistinctColors       int                  `json:"distinct_colors"`
	AverageWears         int                  `json:"average_wears"`
	TopColors            []Count              `json:"top_colors"`
	TopTypes             []Count              `json:"top_types"`
	OccasionDistribution []Count              `json:"occasion_distribution"`
	MostWornItem         *models.ClothingItem `json:"most_worn_item,omitempty"`
	LeastWornItem        *models.ClothingItem `json:"least_worn_item,omitempty"`
	Tips                 []string             `json:"tips"`
}

// rank orders counts by count desc, then value asc so equal counts are stable.
func rank(counts map[string]int, limit int) []Count {
	out := make([]Count, 0, len(counts))
	for value, count := range counts {
		out = append(out, Count{Label: languageutil.Label(value), Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func ComputeInsights(wardrobe []models.ClothingItem, savedOutfits int) Insights {
	colors := map[string]int{}
	types := map[string]int{}
	occasions := map[string]int{}
	totalWears := 0

	var mostWorn, leastWorn *models.ClothingItem
	for i := range wardrobe {
		item := &wardrobe[i]
		colors[item.ColorName]++
		types[string(item.Type)]++
		for _, occasion := range item.Occasions {
			occasions[occasion]++
		}
		totalWears += item.WearCount
		if mostWorn == nil || item.WearCount > mostWorn.WearCount {
			mostWorn = item
		}
		if leastWorn == nil || item.WearCount < leastWorn.WearCount {
			leastWorn = item
		}
	}

	insights := Insights{
		TotalItems:           len(wardrobe),
		SavedOutfits:         savedOutfits,
		DistinctColors:       len(colors),
		TopColors:            rank(colors, topColorsLimit),
		TopTypes:             rank(types, topTypesLimit),
		OccasionDistribution: rank(occasions, 0),
		MostWornItem:         mostWorn,
		LeastWornItem:        leastWorn,
	}
	if len(wardrobe) > 0 {
		insights.AverageWears = int(math.Round(float64(totalWears) / float64(len(wardrobe))))
	}

	if len(wardrobe) < smallWardrobe {
		insights.Tips = append(insights.Tips, "Add more items to unlock personalized style insights!")
	} else {
		insights.Tips = append(insights.Tips, fmt.Sprintf("You've got %d items, that's a solid foundation for mixing and matching!", len(wardrobe)))
	}
	if len(insights.TopColors) > 0 {
		favourite := insights.TopColors[0].Value
		if favourite == "" {
			favourite = fallbackPalette
		}
		insights.Tips = append(insights.Tips, fmt.Sprintf("You love %s tones! Try adding some complementary colors for variety.", favourite))
	} else {
		insights.Tips = append(insights.Tips, "Start building your wardrobe to see your color preferences!")
	}
	return insights
}
