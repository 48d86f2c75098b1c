// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func parseBearerToken(c *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(401, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(401, "Invalid authorization header format")
	}

	tokenString := parts[1]
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

// AuthMiddleware authenticates any approved member.
func AuthMiddleware(c *fiber.Ctx) error {
	claims, err := parseBearerToken(c)
	if err != nil {
		e := err.(*fiber.Error)
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	c.Locals("memberId", claims["member_id"])
	c.Locals("memberName", claims["name"])
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		c.Locals("isAdmin", isAdmin)
	}

	return c.Next()
}

// AdminAuthMiddleware requires an admin token.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := parseBearerToken(c)
	if err != nil {
		e := err.(*fiber.Error)
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok || !isAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Access denied. Admin privileges required."})
	}

	c.Locals("memberId", claims["member_id"])
	c.Locals("memberName", claims["name"])
	c.Locals("isAdmin", true)

	return c.Next()
}

// GetMemberID extracts the authenticated member id from the context.
func GetMemberID(c *fiber.Ctx) (uint, error) {
	memberID := c.Locals("memberId")
	if memberID == nil {
		return 0, fiber.NewError(401, "Member not authenticated")
	}

	// JWT claims decode numbers as float64
	if id, ok := memberID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := memberID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid member ID format")
}

// IsAdmin reports whether the current token carries admin privileges.
func IsAdmin(c *fiber.Ctx) bool {
	isAdmin, ok := c.Locals("isAdmin").(bool)
	return ok && isAdmin
}
