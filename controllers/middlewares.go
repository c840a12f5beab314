package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wardrobeapi/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// last seen is written at most this often to spare a write per request
const lastSeenRefresh = time.Hour

// RequestLogger attaches a request scoped zerolog logger to the request
// context and logs every served request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			logger := log.With().
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				logger.Error().Err(err).Int("status", status).Dur("duration", time.Since(start)).Msg("http request failed")
			} else {
				logger.Info().Int("status", status).Dur("duration", time.Since(start)).Msg("http request served")
			}
			return nil
		}
	}
}

func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return ParseUserToken(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		},
	})
}

// ParseUserToken validates an HS256 access token signed with secret.
func ParseUserToken(auth string, secret string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(auth, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

// UserMiddleware loads the account behind the token subject into "currentUser".
func UserMiddleware(users services.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.ErrUnauthorized
			}
			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok || claims.Subject == "" {
				log.Ctx(c.Request().Context()).Warn().Msg("token without subject")
				return echo.ErrUnauthorized
			}
			userID, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil {
				return echo.ErrUnauthorized
			}

			currentUser, err := users.GetUser(c.Request().Context(), uint(userID))
			if errors.Is(err, services.ErrNotFound) {
				return echo.ErrUnauthorized
			}
			if err != nil {
				log.Ctx(c.Request().Context()).Error().Err(err).Uint64("user_id", userID).Msg("failed to load user")
				return echo.ErrInternalServerError
			}
			if currentUser.Banned {
				return echo.NewHTTPError(http.StatusLocked)
			}
			now := time.Now().UTC()
			if currentUser.LastSeenAt == nil || now.Sub(*currentUser.LastSeenAt) > lastSeenRefresh {
				currentUser.LastSeenAt = &now
				if err := users.SaveUser(c.Request().Context(), currentUser); err != nil {
					log.Ctx(c.Request().Context()).Warn().Err(err).Uint64("user_id", userID).Msg("failed to refresh last seen")
				}
			}
			c.Set("currentUser", *currentUser)
			return next(c)
		}
	}
}
