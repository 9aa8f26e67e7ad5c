// Package middleware: проверка токена и прав доступа.
//
// Выдача токенов — не наша забота: middleware только проверяет подпись
// и достаёт из claims список прав. Право на маршрут задаётся одной
// строкой при регистрации маршрута.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const permsKey = "perms"

// Auth разбирает Bearer-токен (HS256) и кладёт права в Locals.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "недействительный токен")
		}

		c.Locals(permsKey, extractPerms(claims))
		return c.Next()
	}
}

// RequirePermission пропускает только запросы с нужным правом.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		perms, _ := c.Locals(permsKey).(map[string]bool)
		if !perms[perm] {
			return fiber.NewError(fiber.StatusForbidden, "нет прав на эту операцию")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return "", fiber.ErrUnauthorized
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fiber.ErrUnauthorized
	}
	return parts[1], nil
}

func extractPerms(claims jwt.MapClaims) map[string]bool {
	perms := make(map[string]bool)
	raw, ok := claims["perms"].([]interface{})
	if !ok {
		return perms
	}
	for _, p := range raw {
		if s, ok := p.(string); ok {
			perms[s] = true
		}
	}
	return perms
}
