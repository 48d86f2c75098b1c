// models/team_quest.go - per (team, quest) progress record
package models

import "time"

type TeamQuestStatus string

const (
	TeamQuestPending   TeamQuestStatus = "pendente"
	TeamQuestAnswered  TeamQuestStatus = "respondido"
	TeamQuestConcluded TeamQuestStatus = "concluida"
)

const (
	EvaluationCorrect = "certo"
	EvaluationWrong   = "errado"
)

// TeamQuest tracks one team's progress on one quest. At most one row
// exists per (team, quest) pair.
//
// State machine: pendente -> respondido (team submits a non-empty
// answer) -> concluida (admin evaluates). Nothing leaves concluida.
type TeamQuest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	TeamID      uint            `json:"team_id" gorm:"not null;uniqueIndex:idx_team_quests_pair"`
	Team        *Team           `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	QuestID     uint            `json:"quest_id" gorm:"not null;uniqueIndex:idx_team_quests_pair"`
	Quest       *Quest          `json:"quest,omitempty" gorm:"foreignKey:QuestID"`
	Status      TeamQuestStatus `json:"status" gorm:"not null;default:'pendente';index"`
	Answer      *string         `json:"answer" gorm:"type:text"`
	SubmittedAt *time.Time      `json:"submitted_at"`

	// Evaluation is nil until an admin concludes the record, then
	// "certo" or "errado". PointsAwarded is only non-zero for "certo".
	Evaluation    *string `json:"evaluation" gorm:"size:10"`
	PointsAwarded int     `json:"points_awarded" gorm:"not null;default:0"`
	EvaluatorID   *uint   `json:"evaluator_id"`
	Feedback      *string `json:"feedback" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamQuest) TableName() string {
	return "team_quests"
}
