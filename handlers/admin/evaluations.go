// handlers/admin/evaluations.go - batch evaluation of submissions
package admin

import (
	"errors"

	"coringas/middleware"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
)

type EvaluationHandler struct {
	quests *services.QuestService
}

func NewEvaluationHandler(quests *services.QuestService) *EvaluationHandler {
	return &EvaluationHandler{quests: quests}
}

type evaluateRequest struct {
	IDs      []uint `json:"ids"`
	Correct  *bool  `json:"correct"`
	Feedback string `json:"feedback"`
}

// Evaluate concludes a batch of submissions with one outcome. Single
// record evaluation is the batch of size one. The batch is a single
// statement: it applies or fails as a whole.
// POST /api/admin/evaluations
func (h *EvaluationHandler) Evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if len(req.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No submissions selected"})
	}
	if req.Correct == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Correctness flag is required"})
	}

	evaluatorID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Not authenticated"})
	}

	if err := h.quests.Evaluate(req.IDs, *req.Correct, evaluatorID, req.Feedback); err != nil {
		if errors.Is(err, services.ErrEmptyBatch) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		// The whole batch failed; the evaluator must re-trigger.
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "evaluated": len(req.IDs)})
}
