package controllers

import (
	"context"
	"net/http"
	"testing"

	"wardrobeapi/models"
	"wardrobeapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileOk(t *testing.T) {
	s := setupTestServer(t, nil)
	user := test.FakeUser(s.stores.Users)

	rec := s.do(test.NewJSONAuthRequest("PATCH", "/wardrobe/profile", UIntToStr(user.ID), models.ProfileUpdateIn{
		Name:         StrPointer("Sam"),
		ColorPalette: []string{"navy", "beige"},
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := s.stores.Users.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", stored.Name)
	assert.Equal(t, []string{"navy", "beige"}, []string(stored.ColorPalette))
	assert.Equal(t, user.BodyType, stored.BodyType)
}

func TestUpdateProfileInvalidSkinTone(t *testing.T) {
	s := setupTestServer(t, nil)
	user := test.FakeUser(s.stores.Users)

	rec := s.do(test.NewJSONAuthRequest("PATCH", "/wardrobe/profile", UIntToStr(user.ID), models.ProfileUpdateIn{
		SkinTone: StrPointer("green"),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
