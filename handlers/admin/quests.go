// handlers/admin/quests.go - quest management and evaluation screens
package admin

import (
	"fmt"
	"path/filepath"
	"time"

	"coringas/models"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestHandler struct {
	db      *gorm.DB
	quests  *services.QuestService
	storage *services.StorageService
}

func NewQuestHandler(db *gorm.DB, quests *services.QuestService, storage *services.StorageService) *QuestHandler {
	return &QuestHandler{db: db, quests: quests, storage: storage}
}

type questRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Number      *int       `json:"number"`
	Points      *int       `json:"points"`
	Visible     *bool      `json:"visible"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	AnswerKey   *string    `json:"answer_key"`
}

// adminQuestView exposes the answer key, which the model hides from
// every other serialization path.
func adminQuestView(q *models.Quest) fiber.Map {
	return fiber.Map{
		"quest":      q,
		"answer_key": q.AnswerKey,
	}
}

// GetGameQuests lists every quest of a game, hidden ones included.
// GET /api/admin/games/:id/quests
func (h *QuestHandler) GetGameQuests(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid game id"})
	}

	var quests []models.Quest
	if err := h.db.Where("game_id = ?", gameID).
		Order("COALESCE(number, 0) ASC, id ASC").
		Find(&quests).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch quests"})
	}

	views := make([]fiber.Map, len(quests))
	for i := range quests {
		views[i] = adminQuestView(&quests[i])
	}

	return c.JSON(fiber.Map{"quests": views})
}

// CreateQuest adds a quest to a game. The game binding is immutable
// after creation.
// POST /api/admin/games/:id/quests
func (h *QuestHandler) CreateQuest(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid game id"})
	}

	var game models.Game
	if err := h.db.First(&game, gameID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Game not found"})
	}

	var req questRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}

	points := 0
	if req.Points != nil {
		points = *req.Points
	}
	if points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
	}

	quest := models.Quest{
		GameID:      game.ID,
		Title:       req.Title,
		Description: req.Description,
		Number:      req.Number,
		Points:      points,
		Status:      models.QuestPending,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Visible != nil {
		quest.Visible = *req.Visible
	}
	if req.AnswerKey != nil {
		quest.AnswerKey = *req.AnswerKey
	}

	if err := h.db.Create(&quest).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create quest"})
	}

	return c.Status(201).JSON(adminQuestView(&quest))
}

// UpdateQuest edits quest fields. The game binding cannot change.
// PUT /api/admin/quests/:id
func (h *QuestHandler) UpdateQuest(c *fiber.Ctx) error {
	id := c.Params("id")

	var quest models.Quest
	if err := h.db.First(&quest, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Quest not found"})
	}

	var req questRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Number != nil {
		updates["number"] = *req.Number
	}
	if req.Points != nil {
		if *req.Points < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
		}
		updates["points"] = *req.Points
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}
	if req.AnswerKey != nil {
		updates["answer_key"] = *req.AnswerKey
	}

	if err := h.db.Model(&quest).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update quest"})
	}

	h.db.First(&quest, id)
	return c.JSON(adminQuestView(&quest))
}

// ActivateQuest opens a quest manually and provisions progress rows.
// POST /api/admin/quests/:id/activate
func (h *QuestHandler) ActivateQuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quest id"})
	}

	quest, err := h.quests.Activate(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "quest": quest})
}

// DeactivateQuest hides a quest without finalizing it.
// POST /api/admin/quests/:id/deactivate
func (h *QuestHandler) DeactivateQuest(c *fiber.Ctx) error {
	id := c.Params("id")

	result := h.db.Model(&models.Quest{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.QuestInactive, "updated_at": time.Now()})
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update quest"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Quest not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// FinalizeQuest closes a quest manually.
// POST /api/admin/quests/:id/finalize
func (h *QuestHandler) FinalizeQuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quest id"})
	}

	quest, err := h.quests.Finalize(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "quest": quest})
}

// UploadDocument attaches a supporting document to a quest.
// POST /api/admin/quests/:id/document
func (h *QuestHandler) UploadDocument(c *fiber.Ctx) error {
	id := c.Params("id")

	var quest models.Quest
	if err := h.db.First(&quest, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Quest not found"})
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Document file is required"})
	}

	key := fmt.Sprintf("quests/%d/%s%s", quest.ID, uuid.New().String()[:8], filepath.Ext(fileHeader.Filename))
	url, err := h.storage.UploadDocument(fileHeader, key)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.db.Model(&quest).
		Updates(map[string]interface{}{"document_url": url, "updated_at": time.Now()}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save document URL"})
	}

	return c.JSON(fiber.Map{"success": true, "document_url": url})
}

// GetSubmissions lists a quest's progress records for the evaluation
// screen. Defaults to respondido so select-all only reaches rows that
// are actually awaiting evaluation.
// GET /api/admin/quests/:id/submissions?status=respondido
func (h *QuestHandler) GetSubmissions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quest id"})
	}

	status := models.TeamQuestStatus(c.Query("status", string(models.TeamQuestAnswered)))
	if c.Query("status") == "all" {
		status = ""
	}

	records, err := h.quests.ListSubmissions(uint(id), status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	return c.JSON(fiber.Map{"submissions": records})
}
