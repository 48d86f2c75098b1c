// models/quest.go
package models

import "time"

type QuestStatus string

const (
	QuestPending   QuestStatus = "pendente"
	QuestActive    QuestStatus = "ativa"
	QuestInactive  QuestStatus = "inativa"
	QuestFinalized QuestStatus = "finalizada"
)

type Quest struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	GameID      uint        `json:"game_id" gorm:"not null;index"`
	Game        *Game       `json:"game,omitempty" gorm:"foreignKey:GameID"`
	Title       string      `json:"title" gorm:"not null;size:150"`
	Description string      `json:"description" gorm:"type:text"`
	Number      *int        `json:"number"`
	Points      int         `json:"points" gorm:"not null;default:0"`
	Visible     bool        `json:"visible" gorm:"default:false;index"`
	Status      QuestStatus `json:"status" gorm:"not null;default:'pendente';index"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	DocumentURL string      `json:"document_url"`

	// AnswerKey is for evaluators only and never serialized; admin
	// endpoints expose it explicitly.
	AnswerKey string `json:"-" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quest) TableName() string {
	return "quests"
}

// SortNumber treats quests without an ordinal as 0 so they sort first.
func (q *Quest) SortNumber() int {
	if q.Number == nil {
		return 0
	}
	return *q.Number
}
