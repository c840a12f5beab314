package controllers

import (
	"strconv"
	"time"

	"wardrobeapi/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const accessTokenTTL = 72 * time.Hour

func BoolPointer(b bool) *bool {
	return &b
}

func StrPointer(b string) *string {
	return &b
}

func IntPointer(i int) *int {
	return &i
}

func UIntToStr(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

func GenerateUserToken(userPk string, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString([]byte(secret))
}

func currentUser(c echo.Context) (models.UserAccount, bool) {
	user, ok := c.Get("currentUser").(models.UserAccount)
	return user, ok
}
