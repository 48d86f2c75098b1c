// services/quest_service.go - quest lifecycle, submission and evaluation
package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"coringas/models"

	"gorm.io/gorm"
)

var (
	ErrEmptyAnswer  = errors.New("answer must not be empty")
	ErrMissingIDs   = errors.New("team and quest must be provided")
	ErrEmptyBatch   = errors.New("no submissions selected")
	ErrQuestHidden  = errors.New("quest is not available")
	ErrQuestNotOpen = errors.New("quest is not active")
)

type QuestService struct {
	db     *gorm.DB
	events *EventBroker
}

func NewQuestService(db *gorm.DB, events *EventBroker) *QuestService {
	return &QuestService{db: db, events: events}
}

// ================== TEAM-FACING QUERIES ==================

// ListVisible returns the quests a team member may see for a game:
// visible AND active, ordered by ordinal (missing ordinal sorts first).
func (s *QuestService) ListVisible(gameID uint) ([]models.Quest, error) {
	var quests []models.Quest
	err := s.db.Where("game_id = ? AND visible = ? AND status = ?",
		gameID, true, models.QuestActive).
		Order("COALESCE(number, 0) ASC, id ASC").
		Find(&quests).Error
	return quests, err
}

// GetQuest fetches a quest by id. Admins bypass the visibility flag;
// everyone else gets the same gate as the listing.
func (s *QuestService) GetQuest(questID uint, isAdmin bool) (*models.Quest, error) {
	var quest models.Quest
	if err := s.db.First(&quest, questID).Error; err != nil {
		return nil, err
	}

	if !isAdmin {
		if !quest.Visible {
			return nil, ErrQuestHidden
		}
		if quest.Status != models.QuestActive {
			return nil, ErrQuestNotOpen
		}
	}

	return &quest, nil
}

// ================== SUBMISSION ==================

// SubmitAnswer records a team's answer on its progress record.
//
// The row is expected to pre-exist; submission only updates by match
// and never inserts. The returned bool reports whether the write was
// confirmed: false with a nil error means no matching row was touched
// and the caller should refresh to reconcile.
func (s *QuestService) SubmitAnswer(teamID, questID uint, answer string) (bool, error) {
	if teamID == 0 || questID == 0 {
		return false, ErrMissingIDs
	}

	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return false, ErrEmptyAnswer
	}

	now := time.Now()
	result := s.db.Model(&models.TeamQuest{}).
		Where("team_id = ? AND quest_id = ? AND status <> ?",
			teamID, questID, models.TeamQuestConcluded).
		Updates(map[string]interface{}{
			"status":       models.TeamQuestAnswered,
			"answer":       trimmed,
			"submitted_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		log.Printf("⚠️ Submission not confirmed: no progress record for team=%d quest=%d", teamID, questID)
		return false, nil
	}

	return true, nil
}

// ================== EVALUATION ==================

// ListSubmissions returns progress records for a quest, optionally
// filtered by status, with team preloaded for the evaluation screen.
func (s *QuestService) ListSubmissions(questID uint, status models.TeamQuestStatus) ([]models.TeamQuest, error) {
	query := s.db.Where("quest_id = ?", questID).Preload("Team")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.TeamQuest
	err := query.Order("submitted_at ASC").Find(&records).Error
	return records, err
}

// Evaluate concludes a batch of submissions with a single outcome.
// Points are the quest's configured value when correct, zero otherwise.
// The whole batch is one statement: it either applies or fails as a
// unit, and re-running with the same flag re-applies the same state.
func (s *QuestService) Evaluate(ids []uint, correct bool, evaluatorID uint, feedback string) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}

	evaluation := models.EvaluationWrong
	if correct {
		evaluation = models.EvaluationCorrect
	}

	var fb *string
	if strings.TrimSpace(feedback) != "" {
		fb = &feedback
	}

	err := s.db.Exec(`
		UPDATE team_quests
		SET status = ?,
		    evaluation = ?,
		    points_awarded = CASE WHEN ?
		        THEN COALESCE((SELECT points FROM quests WHERE quests.id = team_quests.quest_id), 0)
		        ELSE 0 END,
		    evaluator_id = ?,
		    feedback = COALESCE(?, feedback),
		    updated_at = ?
		WHERE id IN ?`,
		models.TeamQuestConcluded, evaluation, correct, evaluatorID, fb, time.Now(), ids,
	).Error
	if err != nil {
		return err
	}

	s.publishEvaluations(ids, correct)
	return nil
}

func (s *QuestService) publishEvaluations(ids []uint, correct bool) {
	if s.events == nil {
		return
	}

	var records []models.TeamQuest
	if err := s.db.Preload("Quest").Where("id IN ?", ids).Find(&records).Error; err != nil {
		log.Printf("Failed to load evaluated records for events: %v", err)
		return
	}

	for _, record := range records {
		if record.Quest == nil {
			continue
		}
		c := correct
		s.events.Publish(GameEvent{
			Type:    EventSubmissionEvaluated,
			GameID:  record.Quest.GameID,
			QuestID: record.QuestID,
			TeamID:  record.TeamID,
			Correct: &c,
		})
	}
}

// ================== LIFECYCLE ==================

// Activate flips a quest to active and provisions the progress rows
// for every active team of its game.
func (s *QuestService) Activate(questID uint) (*models.Quest, error) {
	var quest models.Quest
	if err := s.db.First(&quest, questID).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quest{}).Where("id = ?", questID).
			Updates(map[string]interface{}{"status": models.QuestActive, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		return provisionProgressRows(tx, &quest)
	})
	if err != nil {
		return nil, err
	}

	quest.Status = models.QuestActive
	if s.events != nil {
		s.events.Publish(GameEvent{
			Type:    EventQuestActivated,
			GameID:  quest.GameID,
			QuestID: quest.ID,
			Title:   quest.Title,
		})
	}

	return &quest, nil
}

// Finalize closes an active quest.
func (s *QuestService) Finalize(questID uint) (*models.Quest, error) {
	var quest models.Quest
	if err := s.db.First(&quest, questID).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Quest{}).Where("id = ?", questID).
		Updates(map[string]interface{}{"status": models.QuestFinalized, "updated_at": time.Now()}).Error; err != nil {
		return nil, err
	}

	quest.Status = models.QuestFinalized
	if s.events != nil {
		s.events.Publish(GameEvent{
			Type:    EventQuestFinalized,
			GameID:  quest.GameID,
			QuestID: quest.ID,
			Title:   quest.Title,
		})
	}

	return &quest, nil
}

// ActivateDueQuests opens every pending quest whose start time has
// arrived. Used by the scheduler; returns the activated quests.
func (s *QuestService) ActivateDueQuests(now time.Time) ([]models.Quest, error) {
	var due []models.Quest
	err := s.db.Where("status = ? AND start_date IS NOT NULL AND start_date <= ?",
		models.QuestPending, now).
		Find(&due).Error
	if err != nil {
		return nil, err
	}

	var activated []models.Quest
	for _, quest := range due {
		updated, err := s.Activate(quest.ID)
		if err != nil {
			log.Printf("[Scheduler] Failed to activate quest %d: %v", quest.ID, err)
			continue
		}
		activated = append(activated, *updated)
	}
	return activated, nil
}

// FinalizeExpiredQuests closes every active quest past its end time.
func (s *QuestService) FinalizeExpiredQuests(now time.Time) ([]models.Quest, error) {
	var expired []models.Quest
	err := s.db.Where("status = ? AND end_date IS NOT NULL AND end_date <= ?",
		models.QuestActive, now).
		Find(&expired).Error
	if err != nil {
		return nil, err
	}

	var finalized []models.Quest
	for _, quest := range expired {
		updated, err := s.Finalize(quest.ID)
		if err != nil {
			log.Printf("[Scheduler] Failed to finalize quest %d: %v", quest.ID, err)
			continue
		}
		finalized = append(finalized, *updated)
	}
	return finalized, nil
}

// provisionProgressRows inserts the missing (team, quest) pairs for the
// quest's game, one pendente row per active team. Existing rows are
// left untouched.
func provisionProgressRows(tx *gorm.DB, quest *models.Quest) error {
	now := time.Now()
	return tx.Exec(`
		INSERT INTO team_quests (team_id, quest_id, status, points_awarded, created_at, updated_at)
		SELECT t.id, ?, ?, 0, ?, ?
		FROM teams t
		WHERE t.game_id = ? AND t.status = ?
		  AND NOT EXISTS (
		      SELECT 1 FROM team_quests tq
		      WHERE tq.team_id = t.id AND tq.quest_id = ?
		  )`,
		quest.ID, models.TeamQuestPending, now, now,
		quest.GameID, models.TeamActive, quest.ID,
	).Error
}

// ProvisionTeam creates pendente progress rows for one team against
// every active quest of its game. Called when a team is activated
// after quests already opened.
func (s *QuestService) ProvisionTeam(team *models.Team) error {
	now := time.Now()
	return s.db.Exec(`
		INSERT INTO team_quests (team_id, quest_id, status, points_awarded, created_at, updated_at)
		SELECT ?, q.id, ?, 0, ?, ?
		FROM quests q
		WHERE q.game_id = ? AND q.status = ?
		  AND NOT EXISTS (
		      SELECT 1 FROM team_quests tq
		      WHERE tq.team_id = ? AND tq.quest_id = q.id
		  )`,
		team.ID, models.TeamQuestPending, now, now,
		team.GameID, models.QuestActive, team.ID,
	).Error
}
