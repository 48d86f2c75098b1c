// handlers/auth.go - registration, login and profile
package handlers

import (
	"os"
	"strings"
	"time"

	"coringas/middleware"
	"coringas/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a member in pendente status. The account only
// becomes usable after an admin approves it.
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Name, email and a password of at least 8 characters are required",
		})
	}

	var existing models.Member
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Email already registered",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to process password",
		})
	}

	member := models.Member{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Phone:    req.Phone,
		Nickname: req.Nickname,
		Status:   models.MemberPending,
	}

	if err := h.db.Create(&member).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create account",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"member":  member,
		"message": "Registration received. An administrator will review your account.",
	})
}

// Login authenticates an approved member.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Email and password are required",
		})
	}

	var member models.Member
	if err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&member).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid credentials",
		})
	}

	// Admins can always sign in; everyone else needs approval first.
	if !member.IsAdmin {
		switch member.Status {
		case models.MemberPending:
			return c.Status(403).JSON(fiber.Map{
				"success": false,
				"error":   "Account awaiting approval",
			})
		case models.MemberRejected:
			return c.Status(403).JSON(fiber.Map{
				"success": false,
				"error":   "Account was not approved",
			})
		}
	}

	member.LastLogin = time.Now()
	h.db.Save(&member)

	token, err := generateToken(&member)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"member":  member,
	})
}

// Me returns the authenticated member's profile.
// GET /api/members/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	var member models.Member
	if err := h.db.First(&member, memberID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Member not found"})
	}

	return c.JSON(fiber.Map{"success": true, "member": member})
}

// UpdateMe updates the authenticated member's own profile fields.
// PUT /api/members/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Nickname string `json:"nickname"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if strings.TrimSpace(req.Name) != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Nickname != "" {
		updates["nickname"] = req.Nickname
	}

	if err := h.db.Model(&models.Member{}).Where("id = ?", memberID).
		Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
	}

	var member models.Member
	h.db.First(&member, memberID)
	return c.JSON(fiber.Map{"success": true, "member": member})
}

// generateToken signs a JWT for the member.
func generateToken(member *models.Member) (string, error) {
	claims := jwt.MapClaims{
		"member_id": member.ID,
		"name":      member.Name,
		"is_admin":  member.IsAdmin,
		"exp":       time.Now().Add(72 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
