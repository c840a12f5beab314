package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"wardrobeapi/stylist"
	"wardrobeapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInsights(t *testing.T) {
	s := setupTestServer(t, nil)
	user := test.FakeUser(s.stores.Users)
	seedWardrobe(s, user.ID)
	likeOne(t, s, user.ID)

	rec := s.do(test.NewJSONAuthRequest("GET", "/wardrobe/insights", UIntToStr(user.ID), ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var insights stylist.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	assert.Equal(t, 3, insights.TotalItems)
	assert.Equal(t, 1, insights.SavedOutfits)
	assert.Equal(t, 2, insights.DistinctColors)
	require.NotEmpty(t, insights.TopColors)
	assert.Equal(t, "white", insights.TopColors[0].Value)
	assert.Equal(t, 2, insights.TopColors[0].Count)
	assert.Equal(t, []string{
		"Add more items to unlock personalized style insights!",
		"You love white tones! Try adding some complementary colors for variety.",
	}, insights.Tips)
}

func TestGetInsightsEmptyWardrobe(t *testing.T) {
	s := setupTestServer(t, nil)
	user := test.FakeUser(s.stores.Users)

	rec := s.do(test.NewJSONAuthRequest("GET", "/wardrobe/insights", UIntToStr(user.ID), ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var insights stylist.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	assert.Equal(t, 0, insights.TotalItems)
	assert.Nil(t, insights.MostWornItem)
	assert.Contains(t, insights.Tips, "Start building your wardrobe to see your color preferences!")
}
