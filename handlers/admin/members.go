// handlers/admin/members.go - member approval workflow
package admin

import (
	"log"
	"time"

	"coringas/models"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MemberHandler struct {
	db       *gorm.DB
	whatsapp *services.WhatsAppService
}

func NewMemberHandler(db *gorm.DB, whatsapp *services.WhatsAppService) *MemberHandler {
	return &MemberHandler{db: db, whatsapp: whatsapp}
}

// GetMembers returns members with pagination and optional status filter.
// GET /api/admin/members?status=pendente&page=1&limit=20
func (h *MemberHandler) GetMembers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status", "")
	search := c.Query("search", "")

	offset := (page - 1) * limit

	var members []models.Member
	var total int64

	query := h.db.Model(&models.Member{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&members).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch members"})
	}

	return c.JSON(fiber.Map{
		"members": members,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// ApproveMember approves a pending registration and notifies the
// member when the WhatsApp gateway is configured.
// POST /api/admin/members/:id/approve
func (h *MemberHandler) ApproveMember(c *fiber.Ctx) error {
	return h.setStatus(c, models.MemberApproved)
}

// RejectMember refuses a registration.
// POST /api/admin/members/:id/reject
func (h *MemberHandler) RejectMember(c *fiber.Ctx) error {
	return h.setStatus(c, models.MemberRejected)
}

func (h *MemberHandler) setStatus(c *fiber.Ctx, status models.MemberStatus) error {
	id := c.Params("id")

	var member models.Member
	if err := h.db.First(&member, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Member not found"})
	}

	if err := h.db.Model(&member).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update member"})
	}
	member.Status = status

	if status == models.MemberApproved && h.whatsapp != nil {
		if err := h.whatsapp.NotifyMemberApproved(&member); err != nil {
			// Notification failures never block approval.
			log.Printf("WhatsApp approval notice failed for member %d: %v", member.ID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true, "member": member})
}
