// services/ranking_service.go - leaderboard aggregation
package services

import (
	"sort"

	"coringas/models"

	"gorm.io/gorm"
)

type RankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{db: db}
}

// RankingEntry is one leaderboard row, derived per request and never
// persisted.
type RankingEntry struct {
	Position       int    `json:"position"`
	TeamID         uint   `json:"team_id"`
	TeamName       string `json:"team_name"`
	TotalPoints    int    `json:"total_points"`
	CompletedCount int    `json:"completed_count"`
}

// Ranking computes the leaderboard for a game. All progress rows for
// the game's quests are pulled in one bulk fetch and grouped by team
// in memory; per-team queries would fan out one round trip per team.
func (s *RankingService) Ranking(gameID uint) ([]RankingEntry, error) {
	var teams []models.Team
	if err := s.db.Where("game_id = ? AND status = ?", gameID, models.TeamActive).
		Order("id ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	var questIDs []uint
	if err := s.db.Model(&models.Quest{}).Where("game_id = ?", gameID).
		Pluck("id", &questIDs).Error; err != nil {
		return nil, err
	}

	var records []models.TeamQuest
	if len(questIDs) > 0 {
		if err := s.db.Where("quest_id IN ?", questIDs).Find(&records).Error; err != nil {
			return nil, err
		}
	}

	byTeam := make(map[uint][]models.TeamQuest, len(teams))
	for _, record := range records {
		byTeam[record.TeamID] = append(byTeam[record.TeamID], record)
	}

	entries := make([]RankingEntry, 0, len(teams))
	for _, team := range teams {
		entry := RankingEntry{TeamID: team.ID, TeamName: team.Name}
		for _, record := range byTeam[team.ID] {
			if record.Evaluation == nil || *record.Evaluation != models.EvaluationCorrect {
				continue
			}
			entry.TotalPoints += record.PointsAwarded
			if record.Status == models.TeamQuestConcluded {
				entry.CompletedCount++
			}
		}
		entries = append(entries, entry)
	}

	// Points desc, then completed quests desc. Further ties keep the
	// stable input order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].CompletedCount > entries[j].CompletedCount
	})

	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}
