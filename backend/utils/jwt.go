package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"institute/backend/config"
)

// AuthCookieName is the cookie that carries the session token.
const AuthCookieName = "auth-token"

const tokenLifetime = time.Hour

// GenerateJWTToken signs a session token bound to a wallet address.
func GenerateJWTToken(address string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"address": address,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractAddressFromToken verifies the auth cookie and returns the wallet
// address it is bound to.
func ExtractAddressFromToken(c *fiber.Ctx, cfg *config.Config) (string, error) {
	tokenString := c.Cookies(AuthCookieName)
	if tokenString == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	address, ok := claims["address"].(string)
	if !ok || address == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid address in token")
	}

	return address, nil
}

// SetAuthCookie attaches a session token to the response.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		MaxAge:   int(tokenLifetime.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// ClearAuthCookie expires the session token cookie.
func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
