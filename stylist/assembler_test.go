package stylist

import (
	"fmt"
	"strings"
	"testing"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, name string, clothingType models.ClothingType, occasions ...models.Occasion) models.ClothingItem {
	tags := pq.StringArray{}
	for _, occasion := range occasions {
		tags = append(tags, string(occasion))
	}
	return models.ClothingItem{ID: id, Name: name, Type: clothingType, Color: "#000000", ColorName: "black", Occasions: tags}
}

func sequentialIDs() services.IDGenerator {
	n := 0
	return services.IDFunc(func() string {
		n++
		return fmt.Sprintf("outfit-%d", n)
	})
}

func basicWardrobe() []models.ClothingItem {
	return []models.ClothingItem{
		item("top", "Plain Tee", models.ClothingTop, models.OccasionCasual),
		item("bottom", "Chinos", models.ClothingBottom, models.OccasionCasual),
		item("shoes", "Loafers", models.ClothingShoes, models.OccasionCasual),
	}
}

func TestGenerateScenario(t *testing.T) {
	outfit, err := GenerateOutfit(basicWardrobe(), models.OccasionCasual, "minimal", "")
	require.NoError(t, err)

	require.Len(t, outfit.Items, 3)
	assert.Equal(t, models.ClothingTop, outfit.Items[0].Type)
	assert.Equal(t, models.ClothingBottom, outfit.Items[1].Type)
	assert.Equal(t, models.ClothingShoes, outfit.Items[2].Type)
	assert.GreaterOrEqual(t, outfit.MatchScore, 80)
	assert.LessOrEqual(t, outfit.MatchScore, 99)
	assert.Contains(t, GenericExplanations(), outfit.Explanation)
	assert.Equal(t, models.OccasionCasual, outfit.Occasion)
	assert.Equal(t, "minimal", outfit.Mood)
	assert.NotEmpty(t, outfit.ID)
	assert.Nil(t, outfit.Liked)
	assert.Nil(t, outfit.Rating)
	assert.Zero(t, outfit.UserID)
	assert.False(t, outfit.CreatedAt.IsZero())
}

func TestGenerateFastFailConsumesNothing(t *testing.T) {
	idCalls := 0
	ids := services.IDFunc(func() string {
		idCalls++
		return "unused"
	})
	wardrobes := [][]models.ClothingItem{
		nil,
		{},
		{item("top", "Tee", models.ClothingTop, models.OccasionCasual)},
	}
	for _, wardrobe := range wardrobes {
		for _, occasion := range models.Occasions {
			for _, hint := range []string{"", "tee", "   "} {
				random := &CountingSource{Source: DefaultSource}
				outfit, err := NewAssembler(random, ids).Generate(wardrobe, occasion, "calm", hint)
				assert.ErrorIs(t, err, ErrInsufficientWardrobe)
				assert.Nil(t, outfit)
				assert.Zero(t, random.Count)
			}
		}
	}
	assert.Zero(t, idCalls)
}

func TestGenerateSlotCoverage(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("t1", "Tee", models.ClothingTop, models.OccasionCasual),
		item("t2", "Rain Jacket", models.ClothingOuterwear),
		item("b1", "Jeans", models.ClothingBottom, models.OccasionWork),
		item("b2", "Shorts", models.ClothingBottom, models.OccasionBeach),
		item("s1", "Sneakers", models.ClothingShoes),
		item("a1", "Watch", models.ClothingAccessory),
		item("a2", "Cap", models.ClothingAccessory, models.OccasionCasual),
		item("d1", "Sundress", models.ClothingDress, models.OccasionCasual),
		item("w1", "Leggings", models.ClothingActivewear, models.OccasionGym),
	}
	assembler := NewAssembler(nil, nil)
	for i := 0; i < 500; i++ {
		occasion := models.Occasions[i%len(models.Occasions)]
		outfit, err := assembler.Generate(wardrobe, occasion, "any", []string{"", "jeans cap", "xx"}[i%3])
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(outfit.Items), 3)
		require.LessOrEqual(t, len(outfit.Items), 4)
		assert.Contains(t, []models.ClothingType{models.ClothingTop, models.ClothingOuterwear}, outfit.Items[0].Type)
		assert.Equal(t, models.ClothingBottom, outfit.Items[1].Type)
		assert.Equal(t, models.ClothingShoes, outfit.Items[2].Type)
		if len(outfit.Items) == 4 {
			assert.Equal(t, models.ClothingAccessory, outfit.Items[3].Type)
		}
		for _, picked := range outfit.Items {
			assert.NotContains(t, []models.ClothingType{models.ClothingDress, models.ClothingActivewear}, picked.Type)
		}
		assert.GreaterOrEqual(t, outfit.MatchScore, 80)
		assert.LessOrEqual(t, outfit.MatchScore, 99)
	}
}

func TestGenerateSizeInvariantOnSparseWardrobes(t *testing.T) {
	wardrobes := [][]models.ClothingItem{
		{item("t", "Tee", models.ClothingTop), item("b", "Jeans", models.ClothingBottom)},
		{item("s", "Boots", models.ClothingShoes), item("a", "Scarf", models.ClothingAccessory)},
		{item("t", "Tee", models.ClothingTop), item("d", "Dress", models.ClothingDress)},
	}
	for i, wardrobe := range wardrobes {
		for n := 0; n < 200; n++ {
			outfit, err := GenerateOutfit(wardrobe, models.OccasionCasual, "", "")
			if err != nil {
				assert.ErrorIs(t, err, ErrInsufficientWardrobe, "wardrobe %d", i)
				continue
			}
			assert.GreaterOrEqual(t, len(outfit.Items), 2)
			assert.LessOrEqual(t, len(outfit.Items), 4)
		}
	}

	// a top with an unpooled dress can never reach two items
	_, err := GenerateOutfit(wardrobes[2], models.OccasionCasual, "", "")
	assert.ErrorIs(t, err, ErrInsufficientWardrobe)
}

func TestGenerateScoreBounds(t *testing.T) {
	for _, draw := range []float64{0, 0.049, 0.5, 0.95, 0.9999999999} {
		outfit, err := NewAssembler(FixedSource(draw), nil).Generate(basicWardrobe(), models.OccasionCasual, "", "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outfit.MatchScore, 80)
		assert.LessOrEqual(t, outfit.MatchScore, 99)
	}
	outfit, err := NewAssembler(FixedSource(0.9999999999), nil).Generate(basicWardrobe(), models.OccasionCasual, "", "")
	require.NoError(t, err)
	assert.Equal(t, 99, outfit.MatchScore)
}

func TestGenerateHonorsHint(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("hinted", "Red Hint-Top", models.ClothingTop, models.OccasionCasual),
		item("other-top", "Grey Sweater", models.ClothingTop, models.OccasionCasual),
		item("bottom", "Jeans", models.ClothingBottom),
		item("shoes", "Sneakers", models.ClothingShoes),
	}
	assembler := NewAssembler(nil, nil)
	hinted := 0
	const runs = 1000
	for i := 0; i < runs; i++ {
		outfit, err := assembler.Generate(wardrobe, models.OccasionCasual, "playful", "hint")
		require.NoError(t, err)
		if outfit.Items[0].ID == "hinted" {
			hinted++
			assert.Contains(t, outfit.Explanation, `"hint"`)
		}
	}
	assert.GreaterOrEqual(t, hinted, runs*80/100)
}

func TestGenerateUnsupportedTypesOnly(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("d1", "Sundress", models.ClothingDress, models.OccasionCasual),
		item("d2", "Slip Dress", models.ClothingDress, models.OccasionParty),
		item("w1", "Leggings", models.ClothingActivewear, models.OccasionGym),
	}
	for i := 0; i < 50; i++ {
		outfit, err := GenerateOutfit(wardrobe, models.OccasionCasual, "", "dress")
		assert.ErrorIs(t, err, ErrInsufficientWardrobe)
		assert.Nil(t, outfit)
	}
}

func TestGenerateDeterministicWithFixedSource(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("t1", "Navy Polo", models.ClothingTop, models.OccasionWork),
		item("t2", "Tee", models.ClothingTop),
		item("b1", "Navy Trousers", models.ClothingBottom, models.OccasionWork),
		item("b2", "Shorts", models.ClothingBottom),
		item("s1", "Oxfords", models.ClothingShoes),
		item("s2", "Flip Flops", models.ClothingShoes, models.OccasionBeach),
		item("a1", "Belt", models.ClothingAccessory),
	}
	first, err := NewAssembler(FixedSource(0.05), sequentialIDs()).Generate(wardrobe, models.OccasionWork, "sharp", "navy")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := NewAssembler(FixedSource(0.05), sequentialIDs()).Generate(wardrobe, models.OccasionWork, "sharp", "navy")
		require.NoError(t, err)
		assert.Equal(t, first.Items.IDs(), again.Items.IDs())
		assert.Equal(t, first.MatchScore, again.MatchScore)
		assert.Equal(t, first.Explanation, again.Explanation)
	}
	// 0.05 fails the best and preferred gates, so occasion matches win and the accessory is skipped
	assert.Equal(t, []string{"t1", "b1", "s1"}, first.Items.IDs())
	assert.Equal(t, 81, first.MatchScore)
	assert.Equal(t, `Curated this look based on your request: "navy". It fits the work vibe perfectly!`, first.Explanation)
}

func TestGenerateDrawOrder(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("alpha", "Alpha Shirt", models.ClothingTop, models.OccasionCasual),
		item("beta", "Beta Shirt", models.ClothingTop, models.OccasionCasual),
		item("bottom", "Jeans", models.ClothingBottom, models.OccasionCasual),
		item("shoes", "Sneakers", models.ClothingShoes, models.OccasionCasual),
		item("watch", "Watch", models.ClothingAccessory),
		item("cap", "Cap", models.ClothingAccessory),
	}
	random := &SequenceSource{Values: []float64{
		0.05, // top: best gate fails
		0.2,  // top: preferred gate fails
		0.9,  // top: occasion pick -> beta
		0.0,  // bottom pick
		0.0,  // shoes pick
		0.6,  // accessory gate passes
		0.0,  // accessory pick -> watch
		0.99, // generic explanation -> last
		0.45, // score -> 89
	}}
	outfit, err := NewAssembler(random, sequentialIDs()).Generate(wardrobe, models.OccasionCasual, "", "alpha")
	require.NoError(t, err)

	assert.Equal(t, 9, random.Draws())
	assert.Equal(t, []string{"beta", "bottom", "shoes", "watch"}, outfit.Items.IDs())
	assert.Equal(t, genericExplanations[len(genericExplanations)-1], outfit.Explanation)
	assert.Equal(t, 89, outfit.MatchScore)
	assert.Equal(t, "outfit-1", outfit.ID)
}

func TestGenerateBestBranchTakesOneGateDraw(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("alpha", "Alpha Shirt", models.ClothingTop, models.OccasionCasual),
		item("beta", "Beta Shirt", models.ClothingTop, models.OccasionCasual),
		item("bottom", "Jeans", models.ClothingBottom),
	}
	random := &SequenceSource{Values: []float64{
		0.5, // top: best gate passes, no preferred draw
		0.3, // top: best pick -> alpha
		0.7, // bottom: no occasion match, pool pick
		0.0, // score
	}}
	outfit, err := NewAssembler(random, nil).Generate(wardrobe, models.OccasionCasual, "", "alpha")
	require.NoError(t, err)
	assert.Equal(t, 4, random.Draws())
	assert.Equal(t, []string{"alpha", "bottom"}, outfit.Items.IDs())
	assert.Equal(t, 80, outfit.MatchScore)
	assert.True(t, strings.HasPrefix(outfit.Explanation, "Curated this look"))
}

func TestGeneratePreferredAccessoryAlwaysIncluded(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("top", "Tee", models.ClothingTop),
		item("bottom", "Jeans", models.ClothingBottom),
		item("watch", "Gold Watch", models.ClothingAccessory),
		item("cap", "Cap", models.ClothingAccessory),
	}
	for i := 0; i < 100; i++ {
		outfit, err := GenerateOutfit(wardrobe, models.OccasionParty, "", "gold")
		require.NoError(t, err)
		require.Len(t, outfit.Items, 3)
		assert.Equal(t, "watch", outfit.Items[2].ID)
	}

	// with a low gate draw and nothing preferred the accessory is skipped
	outfit, err := NewAssembler(FixedSource(0.5), nil).Generate(wardrobe, models.OccasionParty, "", "")
	require.NoError(t, err)
	assert.Len(t, outfit.Items, 2)
}

func TestHintTokens(t *testing.T) {
	assert.Nil(t, HintTokens(""))
	assert.Nil(t, HintTokens("   "))
	assert.Equal(t, []string{"blue", "linen", "shirt"}, HintTokens("  My BLUE linen Shirt "))
	assert.Empty(t, HintTokens("a to be"))
	assert.Equal(t, []string{"çok"}, HintTokens("ÇOK iç"))
	assert.Equal(t, []string{"👍👍"}, HintTokens("👍👍"))
	assert.Empty(t, HintTokens("👍"))
}

func TestGenerateQuotesHintAsTyped(t *testing.T) {
	wardrobe := []models.ClothingItem{
		item("tee", "Plain Tee", models.ClothingTop),
		item("jeans", "Jeans", models.ClothingBottom),
	}
	hint := "  plain\ttee "
	outfit, err := NewAssembler(FixedSource(0.5), nil).Generate(wardrobe, models.OccasionCasual, "easy", hint)
	require.NoError(t, err)
	assert.Equal(t, []string{"tee", "jeans"}, outfit.Items.IDs())
	assert.Equal(t, "Curated this look based on your request: \"  plain\ttee \". It fits the casual vibe perfectly!", outfit.Explanation)
}

func TestPreferredIDsMatchesEveryField(t *testing.T) {
	wardrobe := []models.ClothingItem{
		{ID: "by-name", Name: "Denim Jacket", Type: models.ClothingOuterwear, Color: "#123456", ColorName: "indigo"},
		{ID: "by-color", Name: "Tee", Type: models.ClothingTop, Color: "red", ColorName: "crimson"},
		{ID: "by-color-name", Name: "Chinos", Type: models.ClothingBottom, Color: "#c2b280", ColorName: "Sand"},
		{ID: "by-type", Name: "Runners", Type: models.ClothingShoes, Color: "#ffffff", ColorName: "white"},
		{ID: "none", Name: "Cap", Type: models.ClothingAccessory, Color: "#000000", ColorName: "black"},
	}
	preferred := PreferredIDs(wardrobe, "denim red sand shoes")
	assert.Equal(t, map[string]bool{"by-name": true, "by-color": true, "by-color-name": true, "by-type": true}, preferred)
	assert.Empty(t, PreferredIDs(wardrobe, "it is ok"))
}
