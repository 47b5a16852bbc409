package http

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDKey is the echo context key the authenticated profile id is stored
// under.
const userIDKey = "user_id"

// JWTAuth authenticates requests from the Authorization header. The bearer
// token must be HMAC-signed with the given secret and carry the user's
// profile id in the "sub" claim. On success the id is parsed into a
// kernel.UUID and stored on the request context for the handlers.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := extractUserID(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or missing credentials",
				})
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// extractUserID pulls the user id from the JWT in the Authorization header.
func extractUserID(c echo.Context, secret []byte) (kernel.UUID, error) {
	header := c.Request().Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return kernel.UUID{}, errors.New("missing bearer token")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return kernel.UUID{}, errors.New("token carries no subject")
	}

	return kernel.UUIDFromString(sub)
}

// authenticatedUser returns the profile id stored by JWTAuth.
func authenticatedUser(c echo.Context) (kernel.UUID, bool) {
	id, ok := c.Get(userIDKey).(kernel.UUID)
	return id, ok
}
